package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
)

// TaskView is the renderable state of a task detail: the task, the
// actions the viewer may take on it, whether a mutation is in flight and
// the last mutation failure.
type TaskView struct {
	Task    model.Task
	Actions []model.TaskAction
	Busy    bool
	// LastError is the failure of the most recent operation, cleared when
	// a new one starts.
	LastError error
}

// ControllerConfig is the configuration for a lifecycle controller.
type ControllerConfig struct {
	Backend client.Backend
	// ViewerID identifies the current user. Empty means unauthenticated,
	// which is treated as non-owner everywhere.
	ViewerID string
	Logger   log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Backend == nil {
		return fmt.Errorf("backend client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "lifecycle.Controller"})
	return nil
}

// Controller drives the lifecycle of one task: it loads the task, derives
// the viewer's available actions and executes mutations against the
// backend. Mutations never update the view speculatively, state only
// changes after a successful refetch of the task. A single mutation may
// be in flight at a time.
type Controller struct {
	backend  client.Backend
	viewerID string
	logger   log.Logger

	mu     sync.Mutex
	view   TaskView
	loaded bool
	busy   bool
	// Fetch fencing, out of order refetch results never overwrite newer
	// state (last request wins).
	seq     uint64
	applied uint64
}

// NewController creates a new lifecycle controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		backend:  cfg.Backend,
		viewerID: cfg.ViewerID,
		logger:   cfg.Logger,
	}, nil
}

// Load fetches a task and derives the viewer's actions for it.
func (c *Controller) Load(ctx context.Context, taskID string) (TaskView, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	task, err := c.backend.GetTaskByID(ctx, taskID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.view.LastError = err
		return c.view, fmt.Errorf("could not load task: %w", err)
	}

	c.applyLocked(seq, *task)
	c.loaded = true
	c.view.LastError = nil
	return c.view, nil
}

// View returns the current task view.
func (c *Controller) View() TaskView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// applyLocked installs a fetched task unless a later fetch already did.
func (c *Controller) applyLocked(seq uint64, task model.Task) {
	if seq <= c.applied {
		c.logger.Debugf("Discarded stale fetch result for task: %s", task.ID)
		return
	}
	c.applied = seq
	c.view.Task = task
	c.view.Actions = ActionsForViewer(task, c.viewerID)
}

// Publish publishes the loaded draft task.
func (c *Controller) Publish(ctx context.Context) (TaskView, error) {
	return c.mutate(ctx, model.TaskActionPublish, func(ctx context.Context, id string) error {
		_, err := c.backend.PublishTask(ctx, id)
		return err
	})
}

// Pause pauses the loaded active task.
func (c *Controller) Pause(ctx context.Context) (TaskView, error) {
	return c.mutate(ctx, model.TaskActionPause, func(ctx context.Context, id string) error {
		_, err := c.backend.PauseTask(ctx, id)
		return err
	})
}

// Resume resumes the loaded paused task.
func (c *Controller) Resume(ctx context.Context) (TaskView, error) {
	return c.mutate(ctx, model.TaskActionResume, func(ctx context.Context, id string) error {
		_, err := c.backend.ResumeTask(ctx, id)
		return err
	})
}

// Cancel cancels the loaded task.
func (c *Controller) Cancel(ctx context.Context) (TaskView, error) {
	return c.mutate(ctx, model.TaskActionCancel, func(ctx context.Context, id string) error {
		_, err := c.backend.CancelTask(ctx, id)
		return err
	})
}

// Claim claims a slot on the loaded task for the viewer.
func (c *Controller) Claim(ctx context.Context) (TaskView, error) {
	if c.viewerID == "" {
		return c.View(), fmt.Errorf("claiming requires an identified user: %w", model.ErrRejected)
	}
	return c.mutate(ctx, model.TaskActionClaim, func(ctx context.Context, id string) error {
		_, err := c.backend.ClaimTask(ctx, id, c.viewerID)
		return err
	})
}

// SubmitProof submits completion proof for the loaded task. The proof is
// validated locally before any request is made.
func (c *Controller) SubmitProof(ctx context.Context, url, description string) (TaskView, error) {
	return c.mutate(ctx, model.TaskActionSubmitProof, func(ctx context.Context, id string) error {
		proof := model.ProofSubmission{TaskID: id, URL: url, Description: description}
		if errs := proof.Validate(); !errs.Empty() {
			return fmt.Errorf("invalid proof submission %v: %w", errs, model.ErrNotValid)
		}
		_, err := c.backend.SubmitTaskProof(ctx, proof)
		return err
	})
}

// mutate runs a single backend mutation for the loaded task: it rejects
// concurrent operations, clears the previous error, executes the call
// and refetches the task on success. On failure the task state is left
// exactly as it was.
func (c *Controller) mutate(ctx context.Context, action model.TaskAction, call func(ctx context.Context, id string) error) (TaskView, error) {
	c.mu.Lock()

	if !c.loaded {
		view := c.view
		c.mu.Unlock()
		return view, fmt.Errorf("no task loaded: %w", model.ErrNotValid)
	}
	if c.busy {
		view := c.view
		c.mu.Unlock()
		return view, fmt.Errorf("%q: %w", action, model.ErrActionInProgress)
	}
	if !actionAvailable(c.view.Actions, action) {
		err := fmt.Errorf("action %q is not available on task in status %s: %w", action, c.view.Task.Status, model.ErrRejected)
		c.view.LastError = err
		view := c.view
		c.mu.Unlock()
		return view, err
	}

	c.busy = true
	c.view.Busy = true
	c.view.LastError = nil
	id := c.view.Task.ID
	c.mu.Unlock()

	err := call(ctx, id)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.busy = false
		c.view.Busy = false
		c.view.LastError = err
		c.logger.Warningf("Task %s action %q failed: %s", id, action, err)
		return c.view, fmt.Errorf("action %q failed: %w", action, err)
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	task, fetchErr := c.backend.GetTaskByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.view.Busy = false

	if fetchErr != nil {
		// The mutation itself succeeded, only the refresh failed. The
		// stale view stays visible with the error attached.
		c.view.LastError = fetchErr
		return c.view, fmt.Errorf("action %q succeeded but refreshing the task failed: %w", action, fetchErr)
	}

	c.applyLocked(seq, *task)
	c.logger.Infof("Task %s action %q applied, status now %s", id, action, c.view.Task.Status)
	return c.view, nil
}

func actionAvailable(actions []model.TaskAction, action model.TaskAction) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
