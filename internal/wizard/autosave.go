package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
)

// DefaultAutoSaveWindow is the debounce window between the last field
// change and the persisted save.
const DefaultAutoSaveWindow = 1 * time.Second

// DebouncedSaverConfig is the configuration for DebouncedSaver.
type DebouncedSaverConfig struct {
	Repository storage.SessionRepository
	Window     time.Duration
	Logger     log.Logger
}

func (c *DebouncedSaverConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Window == 0 {
		c.Window = DefaultAutoSaveWindow
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "wizard.DebouncedSaver"})
	return nil
}

// DebouncedSaver persists wizard snapshots to the draft slot after a
// quiet period. Each Schedule call resets the window, so a burst of
// field changes results in a single write of the latest snapshot.
// Save failures are logged and swallowed, a broken disk must not break
// the form.
type DebouncedSaver struct {
	repo   storage.SessionRepository
	window time.Duration
	logger log.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewDebouncedSaver creates a new debounced saver.
func NewDebouncedSaver(cfg DebouncedSaverConfig) (*DebouncedSaver, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &DebouncedSaver{
		repo:   cfg.Repository,
		window: cfg.Window,
		logger: cfg.Logger,
	}, nil
}

// Schedule arms (or re-arms) the save of the given snapshot. Snapshots
// superseded before the window elapses are never written.
func (s *DebouncedSaver) Schedule(snapshot model.StoredSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.window, func() {
		if err := s.repo.SaveSession(context.Background(), storage.SessionSlotDraft, snapshot); err != nil {
			s.logger.Warningf("Could not auto-save draft session: %s", err)
			return
		}
		s.logger.Debugf("Auto-saved draft session")
	})
}

// Cancel discards the pending save, if any.
func (s *DebouncedSaver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Close cancels the pending save and rejects further scheduling.
func (s *DebouncedSaver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
