package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.SessionRepository.
type Repository struct {
	sessions map[storage.SessionSlot]model.StoredSession
	mu       sync.RWMutex
	logger   log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		sessions: make(map[storage.SessionSlot]model.StoredSession),
		logger:   cfg.Logger,
	}, nil
}

// GetSession retrieves the session stored in a slot.
func (r *Repository) GetSession(ctx context.Context, slot storage.SessionSlot) (*model.StoredSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[slot]
	if !ok {
		return nil, fmt.Errorf("session slot %s: %w", slot, model.ErrNotFound)
	}

	// Return a copy
	sessionCopy := session
	return &sessionCopy, nil
}

// SaveSession stores a session in a slot, replacing any previous record.
func (r *Repository) SaveSession(ctx context.Context, slot storage.SessionSlot, s model.StoredSession) error {
	if slot == storage.SessionSlotEdit && s.TaskID == "" {
		return fmt.Errorf("edit sessions require a task id: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[slot] = s
	r.logger.Debugf("Saved session in slot: %s", slot)

	return nil
}

// DeleteSession empties a slot.
func (r *Repository) DeleteSession(ctx context.Context, slot storage.SessionSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, slot)
	r.logger.Debugf("Deleted session slot: %s", slot)

	return nil
}
