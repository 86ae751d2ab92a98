package submit

import (
	"context"
	"fmt"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/wizard"
)

// ServiceConfig is the configuration for the submit service.
type ServiceConfig struct {
	Backend client.Backend
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Backend == nil {
		return fmt.Errorf("backend client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Submit"})
	return nil
}

// Service handles wizard submission business logic: it gates on full
// validity, sends the assembled payload as a create or an update
// depending on the session mode and clears the persisted session only
// after the backend accepted it.
type Service struct {
	backend client.Backend
	logger  log.Logger
}

// NewService creates a new submit service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		backend: cfg.Backend,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the submit request parameters.
type Request struct {
	Session *wizard.Session
}

// Run submits the wizard session. On any failure the session and its
// persisted slots are left intact so the user can retry.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.Session == nil {
		return nil, fmt.Errorf("session is required: %w", model.ErrNotValid)
	}

	// Gate on real validity, not on the completion markers.
	if !req.Session.IsComplete() {
		return nil, fmt.Errorf("not all steps are valid: %w", model.ErrNotValid)
	}

	draft := req.Session.Payload()

	var task *model.Task
	var err error
	switch req.Session.Mode() {
	case wizard.ModeEdit:
		task, err = s.backend.UpdateTask(ctx, req.Session.TaskID(), draft)
	default:
		task, err = s.backend.CreateTask(ctx, draft)
	}
	if err != nil {
		return nil, fmt.Errorf("could not submit task: %w", err)
	}

	if err := req.Session.Clear(ctx); err != nil {
		// The task exists at this point, a failed cleanup must not look
		// like a failed submission.
		s.logger.Warningf("Task %s submitted but clearing the session failed: %s", task.ID, err)
	}

	s.logger.Infof("Submitted task: %s", task.ID)

	return task, nil
}
