package fake

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
)

// BackendConfig is the configuration for the fake backend.
type BackendConfig struct {
	// Creator is the user tasks are created under.
	Creator model.Creator
	Logger  log.Logger
}

func (c *BackendConfig) defaults() error {
	if c.Creator.ID == "" {
		c.Creator = model.Creator{ID: "fake-user", DisplayName: "Fake User"}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "client.Fake"})
	return nil
}

// Backend is a fake in-memory implementation of the client.Backend
// interface. It simulates the marketplace task lifecycle without a real
// API so the CLI and tests can run offline. It is the authority on
// transition legality the same way the real backend is: illegal
// transitions are rejected with model.ErrRejected.
type Backend struct {
	tasks   map[string]*model.Task
	creator model.Creator
	mu      sync.RWMutex
	logger  log.Logger
}

// NewBackend creates a new fake backend.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Backend{
		tasks:   make(map[string]*model.Task),
		creator: cfg.Creator,
		logger:  cfg.Logger,
	}, nil
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func draftToTask(d model.TaskDraft) model.Task {
	return model.Task{
		Platform:      d.Platform.Platform,
		Type:          d.TaskType.Type,
		TargetURL:     d.TaskType.TargetURL,
		Requirements:  d.TaskType.Requirements,
		Title:         d.Instructions.Title,
		Description:   d.Instructions.Description,
		Instructions:  d.Instructions.Instructions,
		BudgetPerTask: d.Budget.BudgetPerTask,
		TotalSlots:    d.Budget.TaskCount,
		ServiceFee:    d.Budget.ServiceFee,
		TotalCost:     d.Budget.TotalCost,
		Targeting:     d.Targeting.Criteria,
	}
}

// CreateTask creates a new task in draft status. It enforces the backend
// contract: platform, task type, positive budget and positive slot count.
func (b *Backend) CreateTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	if draft.Platform.Platform == "" || draft.TaskType.Type == "" {
		return nil, fmt.Errorf("platform and task type are required: %w", model.ErrRejected)
	}
	if draft.Budget.BudgetPerTask <= 0 || draft.Budget.TaskCount <= 0 {
		return nil, fmt.Errorf("budget and slot count must be positive: %w", model.ErrRejected)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	task := draftToTask(draft)
	task.ID = newID()
	task.Status = model.TaskStatusDraft
	task.Creator = b.creator
	task.CreatedAt = now
	task.UpdatedAt = now

	b.tasks[task.ID] = &task
	b.logger.Infof("Created fake task: %s", task.ID)

	taskCopy := task
	return &taskCopy, nil
}

// UpdateTask replaces the editable fields of an existing task.
func (b *Backend) UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (*model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	updated := draftToTask(draft)
	updated.ID = task.ID
	updated.Status = task.Status
	updated.FilledSlots = task.FilledSlots
	updated.Creator = task.Creator
	updated.CreatedAt = task.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	*task = updated
	b.logger.Infof("Updated fake task: %s", id)

	taskCopy := updated
	return &taskCopy, nil
}

// GetTaskByID returns a task by id.
func (b *Backend) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	task, ok := b.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	// Return a copy to avoid external modifications.
	taskCopy := *task
	return &taskCopy, nil
}

// GetTasks returns a filtered, sorted and paginated task listing.
func (b *Backend) GetTasks(ctx context.Context, filters client.TaskFilters) (*client.TaskPage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tasks := make([]model.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if filters.Status != nil && t.Status != *filters.Status {
			continue
		}
		if filters.Platform != nil && t.Platform != *filters.Platform {
			continue
		}
		if filters.Type != nil && t.Type != *filters.Type {
			continue
		}
		if filters.MinBudget != nil && t.BudgetPerTask < *filters.MinBudget {
			continue
		}
		if filters.MaxBudget != nil && t.BudgetPerTask > *filters.MaxBudget {
			continue
		}
		if filters.OwnerID != "" && t.Creator.ID != filters.OwnerID {
			continue
		}
		tasks = append(tasks, *t)
	}

	asc := filters.SortOrder == client.SortAsc
	sort.Slice(tasks, func(i, j int) bool {
		var less bool
		switch filters.SortBy {
		case "budget":
			less = tasks[i].BudgetPerTask < tasks[j].BudgetPerTask
		default: // created_at
			less = tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	page := filters.Page
	if page <= 0 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	total := len(tasks)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &client.TaskPage{
		Tasks: tasks[start:end],
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// ClaimTask claims a slot on a live task for a performer. When the claim
// fills the last slot the task moves to in_progress.
func (b *Backend) ClaimTask(ctx context.Context, taskID, performerID string) (*model.Assignment, error) {
	if performerID == "" {
		return nil, fmt.Errorf("performer id is required: %w", model.ErrRejected)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	if task.Creator.ID == performerID {
		return nil, fmt.Errorf("owners cannot claim their own tasks: %w", model.ErrRejected)
	}
	if !task.Live() {
		return nil, fmt.Errorf("task is not accepting claims (status: %s): %w", task.Status, model.ErrRejected)
	}
	if task.AvailableSlots() <= 0 {
		return nil, fmt.Errorf("no available slots: %w", model.ErrRejected)
	}

	task.FilledSlots++
	if task.AvailableSlots() == 0 {
		task.Status = model.TaskStatusInProgress
	}
	task.UpdatedAt = time.Now().UTC()

	b.logger.Infof("Claimed fake task: %s (performer: %s)", taskID, performerID)

	return &model.Assignment{
		ID:          newID(),
		TaskID:      taskID,
		PerformerID: performerID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// PublishTask moves a draft task to active.
func (b *Backend) PublishTask(ctx context.Context, id string) (*model.Task, error) {
	return b.transition(id, "publish", model.TaskStatusActive, model.TaskStatusDraft)
}

// PauseTask moves an active task to paused.
func (b *Backend) PauseTask(ctx context.Context, id string) (*model.Task, error) {
	return b.transition(id, "pause", model.TaskStatusPaused, model.TaskStatusActive, model.TaskStatusOpen)
}

// ResumeTask moves a paused task back to active.
func (b *Backend) ResumeTask(ctx context.Context, id string) (*model.Task, error) {
	return b.transition(id, "resume", model.TaskStatusActive, model.TaskStatusPaused)
}

// CancelTask cancels a draft, active or paused task.
func (b *Backend) CancelTask(ctx context.Context, id string) (*model.Task, error) {
	return b.transition(id, "cancel", model.TaskStatusCancelled,
		model.TaskStatusDraft, model.TaskStatusActive, model.TaskStatusOpen, model.TaskStatusPaused)
}

// transition applies a status-only update when the current status is one
// of the allowed source statuses.
func (b *Backend) transition(id, action string, to model.TaskStatus, from ...model.TaskStatus) (*model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	allowed := false
	for _, s := range from {
		if task.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot %s task in status %s: %w", action, task.Status, model.ErrRejected)
	}

	task.Status = to
	task.UpdatedAt = time.Now().UTC()
	b.logger.Infof("Fake task %s: %s -> %s", id, action, to)

	taskCopy := *task
	return &taskCopy, nil
}

// SubmitTaskProof records a proof submission for an in-progress task.
func (b *Backend) SubmitTaskProof(ctx context.Context, proof model.ProofSubmission) (*model.Submission, error) {
	if errs := proof.Validate(); !errs.Empty() {
		return nil, fmt.Errorf("invalid proof submission %v: %w", errs, model.ErrNotValid)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task, ok := b.tasks[proof.TaskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", proof.TaskID, model.ErrNotFound)
	}
	if task.Status != model.TaskStatusInProgress {
		return nil, fmt.Errorf("proof can only be submitted for in-progress tasks (status: %s): %w", task.Status, model.ErrRejected)
	}

	b.logger.Infof("Recorded fake proof for task: %s", proof.TaskID)

	return &model.Submission{
		ID:          newID(),
		TaskID:      proof.TaskID,
		URL:         proof.URL,
		Description: proof.Description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
