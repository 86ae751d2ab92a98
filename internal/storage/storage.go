package storage

import (
	"context"
	"errors"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
)

// SessionSlot identifies one of the two mutually exclusive wizard session
// slots. A draft slot holds a resumable generic draft, an edit slot is
// bound to one existing task id.
type SessionSlot string

const (
	// SessionSlotDraft is the generic resumable draft slot.
	SessionSlotDraft SessionSlot = "draft"
	// SessionSlotEdit is the slot bound to an existing task being edited.
	SessionSlotEdit SessionSlot = "edit"
)

// SessionRepository is the interface for wizard session persistence.
type SessionRepository interface {
	// GetSession retrieves the session stored in a slot. Returns
	// model.ErrNotFound when the slot is empty.
	GetSession(ctx context.Context, slot SessionSlot) (*model.StoredSession, error)
	// SaveSession stores a session in a slot, replacing any previous record.
	SaveSession(ctx context.Context, slot SessionSlot, s model.StoredSession) error
	// DeleteSession empties a slot. Deleting an already empty slot is a no-op.
	DeleteSession(ctx context.Context, slot SessionSlot) error
}

// SessionSourceKind is the kind of resolved session source.
type SessionSourceKind int

const (
	// SessionSourceNone means no persisted session exists.
	SessionSourceNone SessionSourceKind = iota
	// SessionSourceDraft means a generic draft session was found.
	SessionSourceDraft
	// SessionSourceEdit means an edit session bound to a task was found.
	SessionSourceEdit
)

// SessionSource is the result of resolving the two session slots once at
// load time. Stored is nil only when Kind is SessionSourceNone.
type SessionSource struct {
	Kind   SessionSourceKind
	Stored *model.StoredSession
}

// ResolveSessionSource resolves the persisted slots into a single session
// source. The edit slot takes priority over the draft slot. Storage read
// failures are logged and degrade to "no session available", they are
// never fatal to the flow.
func ResolveSessionSource(ctx context.Context, repo SessionRepository, logger log.Logger) SessionSource {
	if logger == nil {
		logger = log.Noop
	}

	edit, err := repo.GetSession(ctx, SessionSlotEdit)
	switch {
	case err == nil:
		return SessionSource{Kind: SessionSourceEdit, Stored: edit}
	case !errors.Is(err, model.ErrNotFound):
		logger.Warningf("Could not read edit session slot, ignoring: %s", err)
	}

	draft, err := repo.GetSession(ctx, SessionSlotDraft)
	switch {
	case err == nil:
		return SessionSource{Kind: SessionSourceDraft, Stored: draft}
	case !errors.Is(err, model.ErrNotFound):
		logger.Warningf("Could not read draft session slot, ignoring: %s", err)
	}

	return SessionSource{Kind: SessionSourceNone}
}
