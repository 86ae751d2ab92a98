package wizard

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
)

// Mode is the mode of a wizard session.
type Mode string

const (
	// ModeDraft is a new-task session persisted in the draft slot.
	ModeDraft Mode = "draft"
	// ModeEdit is a session bound to an existing task. Edit sessions are
	// written once at entry and exempt from auto-save.
	ModeEdit Mode = "edit"
)

// SessionConfig is the configuration for a wizard session.
type SessionConfig struct {
	Repository storage.SessionRepository
	// AutoSaveWindow is the debounce window for draft auto-saves.
	AutoSaveWindow time.Duration
	Logger         log.Logger
}

func (c *SessionConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.AutoSaveWindow == 0 {
		c.AutoSaveWindow = DefaultAutoSaveWindow
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "wizard.Session"})
	return nil
}

// Session owns the in-progress task-creation form: five ordered steps,
// per-step data, per-step validation errors, completion tracking and
// draft persistence.
type Session struct {
	mu        sync.Mutex
	draft     model.TaskDraft
	current   model.StepIndex
	completed map[model.StepIndex]struct{}
	errs      map[model.StepIndex]model.FieldErrors
	mode      Mode
	taskID    string

	repo   storage.SessionRepository
	saver  *DebouncedSaver
	logger log.Logger
}

// NewSession creates a wizard session, rehydrating it from persisted
// storage. An edit-slot record takes priority over a draft-slot record;
// with neither present (or with storage failing) the session starts as
// the empty draft default.
func NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	saver, err := NewDebouncedSaver(DebouncedSaverConfig{
		Repository: cfg.Repository,
		Window:     cfg.AutoSaveWindow,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create auto-saver: %w", err)
	}

	s := &Session{
		completed: map[model.StepIndex]struct{}{},
		errs:      map[model.StepIndex]model.FieldErrors{},
		mode:      ModeDraft,
		repo:      cfg.Repository,
		saver:     saver,
		logger:    cfg.Logger,
	}

	source := storage.ResolveSessionSource(ctx, cfg.Repository, cfg.Logger)
	switch source.Kind {
	case storage.SessionSourceEdit:
		s.mode = ModeEdit
		s.taskID = source.Stored.TaskID
		s.draft = source.Stored.Draft
		s.current = clampStep(source.Stored.CurrentStepIndex)
		// The data originated from a real task, every step starts
		// pre-completed even if it would fail validation now.
		for i := model.StepIndex(0); i < model.StepCount; i++ {
			s.completed[i] = struct{}{}
		}
		s.logger.Debugf("Resumed edit session for task %s", s.taskID)

	case storage.SessionSourceDraft:
		s.draft = source.Stored.Draft
		s.current = clampStep(source.Stored.CurrentStepIndex)
		for _, i := range source.Stored.CompletedSteps {
			step := model.StepIndex(i)
			if step.Valid() {
				s.completed[step] = struct{}{}
			}
		}
		s.logger.Debugf("Resumed draft session at step %s", s.current)
	}

	return s, nil
}

func clampStep(i model.StepIndex) model.StepIndex {
	if i < 0 {
		return 0
	}
	if i >= model.StepCount {
		return model.StepCount - 1
	}
	return i
}

// Close cancels any pending auto-save. It must be called on teardown so
// no save fires after the owning session is gone.
func (s *Session) Close() {
	s.saver.Close()
}

// Mode returns the session mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// TaskID returns the task id an edit session is bound to, empty for
// draft sessions.
func (s *Session) TaskID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskID
}

// Current returns the active step index.
func (s *Session) Current() model.StepIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CompletedSteps returns the sorted indices of steps that validated at
// least once.
func (s *Session) CompletedSteps() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedLocked()
}

func (s *Session) completedLocked() []int {
	steps := make([]int, 0, len(s.completed))
	for i := range s.completed {
		steps = append(steps, int(i))
	}
	sort.Ints(steps)
	return steps
}

// StepErrors returns the current validation errors of a step, nil when
// the step has none recorded.
func (s *Session) StepErrors(step model.StepIndex) model.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs[step]
}

// Payload returns the assembled five-step payload.
func (s *Session) Payload() model.TaskDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetPlatform updates the platform step data.
func (s *Session) SetPlatform(step model.PlatformStep) {
	s.update(func() { s.draft.Platform = step })
}

// SetTaskType updates the task type step data.
func (s *Session) SetTaskType(step model.TaskTypeStep) {
	s.update(func() { s.draft.TaskType = step })
}

// SetInstructions updates the instructions step data.
func (s *Session) SetInstructions(step model.InstructionsStep) {
	s.update(func() { s.draft.Instructions = step })
}

// SetBudget updates the budget step data.
func (s *Session) SetBudget(step model.BudgetStep) {
	s.update(func() { s.draft.Budget = step })
}

// SetTargeting updates the targeting step data.
func (s *Session) SetTargeting(step model.TargetingStep) {
	s.update(func() { s.draft.Targeting = step })
}

// update applies a field mutation and schedules a debounced save. Edit
// sessions are exempt from the auto-save path.
func (s *Session) update(mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate()
	if s.mode == ModeDraft {
		s.saver.Schedule(s.snapshotLocked())
	}
}

func (s *Session) snapshotLocked() model.StoredSession {
	return model.StoredSession{
		TaskID:           s.taskID,
		Draft:            s.draft,
		CurrentStepIndex: s.current,
		CompletedSteps:   s.completedLocked(),
		SavedAt:          time.Now().UTC(),
	}
}

// Advance validates the current step. On failure it records the step's
// field errors and stays. On success it marks the step completed and
// moves to the next step, never past the last one. The returned map is
// empty when the step validated.
func (s *Session) Advance() model.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := s.draft.ValidateStep(s.current)
	if !errs.Empty() {
		s.errs[s.current] = errs
		return errs
	}

	delete(s.errs, s.current)
	s.completed[s.current] = struct{}{} // Idempotent.
	if s.current < model.StepCount-1 {
		s.current++
	}

	if s.mode == ModeDraft {
		s.saver.Schedule(s.snapshotLocked())
	}

	return model.FieldErrors{}
}

// Retreat moves to the previous step without validating, flooring at the
// first step.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current > 0 {
		s.current--
	}

	if s.mode == ModeDraft {
		s.saver.Schedule(s.snapshotLocked())
	}
}

// JumpTo moves directly to a step. Out of range indices leave the
// session unchanged and return an error.
func (s *Session) JumpTo(step model.StepIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !step.Valid() {
		return fmt.Errorf("step index %d out of range: %w", step, model.ErrNotValid)
	}

	s.current = step

	if s.mode == ModeDraft {
		s.saver.Schedule(s.snapshotLocked())
	}

	return nil
}

// IsComplete re-validates all five steps from the current data,
// regardless of completion tracking.
func (s *Session) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := model.StepIndex(0); i < model.StepCount; i++ {
		if !s.draft.ValidateStep(i).Empty() {
			return false
		}
	}
	return true
}

// SaveNow persists the session synchronously to its slot, bypassing the
// debounce window.
func (s *Session) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	slot := storage.SessionSlotDraft
	if s.mode == ModeEdit {
		slot = storage.SessionSlotEdit
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.saver.Cancel()
	if err := s.repo.SaveSession(ctx, slot, snapshot); err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}
	return nil
}

// StartEdit binds the session to an existing task, loading the task's
// data into the steps, marking all of them pre-completed and writing the
// edit slot once.
func (s *Session) StartEdit(ctx context.Context, task model.Task) error {
	if task.ID == "" {
		return fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}

	s.mu.Lock()
	s.saver.Cancel() // The draft slot must not be written after entering edit mode.
	s.mode = ModeEdit
	s.taskID = task.ID
	s.draft = DraftFromTask(task)
	s.current = 0
	s.errs = map[model.StepIndex]model.FieldErrors{}
	s.completed = map[model.StepIndex]struct{}{}
	for i := model.StepIndex(0); i < model.StepCount; i++ {
		s.completed[i] = struct{}{}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.repo.SaveSession(ctx, storage.SessionSlotEdit, snapshot); err != nil {
		return fmt.Errorf("could not save edit session: %w", err)
	}

	s.logger.Infof("Started edit session for task: %s", task.ID)
	return nil
}

// Clear removes both persisted slots and resets the in-memory state to
// the empty draft default.
func (s *Session) Clear(ctx context.Context) error {
	s.saver.Cancel()

	if err := s.repo.DeleteSession(ctx, storage.SessionSlotDraft); err != nil {
		return fmt.Errorf("could not clear draft slot: %w", err)
	}
	if err := s.repo.DeleteSession(ctx, storage.SessionSlotEdit); err != nil {
		return fmt.Errorf("could not clear edit slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = model.TaskDraft{}
	s.current = 0
	s.completed = map[model.StepIndex]struct{}{}
	s.errs = map[model.StepIndex]model.FieldErrors{}
	s.mode = ModeDraft
	s.taskID = ""

	s.logger.Debugf("Cleared wizard session")
	return nil
}

// DraftFromTask maps a task read model back into the five wizard step
// payloads, used when entering edit mode.
func DraftFromTask(t model.Task) model.TaskDraft {
	return model.TaskDraft{
		Platform: model.PlatformStep{Platform: t.Platform},
		TaskType: model.TaskTypeStep{
			Type:         t.Type,
			TargetURL:    t.TargetURL,
			Requirements: t.Requirements,
		},
		Instructions: model.InstructionsStep{
			Title:        t.Title,
			Description:  t.Description,
			Instructions: t.Instructions,
		},
		Budget: model.BudgetStep{
			BudgetPerTask: t.BudgetPerTask,
			TaskCount:     t.TotalSlots,
			ServiceFee:    t.ServiceFee,
			TotalCost:     t.TotalCost,
		},
		Targeting: model.TargetingStep{Criteria: t.Targeting},
	}
}
