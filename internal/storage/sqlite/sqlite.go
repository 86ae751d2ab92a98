package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
	"github.com/boostly/boostly/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.SessionRepository.
// Sessions are stored as JSON blobs, one row per slot.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// GetSession retrieves the session stored in a slot.
func (r *Repository) GetSession(ctx context.Context, slot storage.SessionSlot) (*model.StoredSession, error) {
	query := `SELECT payload FROM wizard_sessions WHERE slot = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, query, string(slot)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session slot %s: %w", slot, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query session: %w", err)
	}

	var session model.StoredSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("could not unmarshal session payload: %w", err)
	}

	return &session, nil
}

// SaveSession stores a session in a slot, replacing any previous record.
func (r *Repository) SaveSession(ctx context.Context, slot storage.SessionSlot, s model.StoredSession) error {
	if slot == storage.SessionSlotEdit && s.TaskID == "" {
		return fmt.Errorf("edit sessions require a task id: %w", model.ErrNotValid)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("could not marshal session payload: %w", err)
	}

	query := `
		INSERT INTO wizard_sessions (slot, task_id, payload, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			task_id = excluded.task_id,
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`

	_, err = r.db.ExecContext(ctx, query, string(slot), s.TaskID, string(payload), s.SavedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	r.logger.Debugf("Saved session in slot: %s", slot)
	return nil
}

// DeleteSession empties a slot. Deleting an already empty slot is a no-op.
func (r *Repository) DeleteSession(ctx context.Context, slot storage.SessionSlot) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE slot = ?`, string(slot))
	if err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	r.logger.Debugf("Deleted session slot: %s", slot)
	return nil
}
