package browse

import (
	"context"
	"fmt"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/log"
)

// ServiceConfig is the configuration for the browse service.
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

	return nil
}

// Service lists marketplace tasks with filtering, sorting and
// pagination.
type Service struct {
	backend client.Backend
	logger  log.Logger
}

// NewService creates a new browse service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		backend: cfg.Backend,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the browse request parameters.
type Request struct {
	Filters client.TaskFilters
}

// Run lists tasks matching the filters.
func (s *Service) Run(ctx context.Context, req Request) (*client.TaskPage, error) {
	s.logger.Debugf("listing tasks with filters: %+v", req.Filters)

	if req.Filters.Page <= 0 {
		req.Filters.Page = 1
	}
	if req.Filters.Limit <= 0 {
		req.Filters.Limit = 20
	}

	page, err := s.backend.GetTasks(ctx, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	s.logger.Debugf("found %d tasks", len(page.Tasks))
	return page, nil
}
