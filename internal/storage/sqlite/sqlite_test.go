package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
	"github.com/boostly/boostly/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *sqlite.Repository {
	t.Helper()

	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "boostly.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestNewRepository(t *testing.T) {
	tests := map[string]struct {
		config func(t *testing.T) sqlite.RepositoryConfig
		expErr bool
	}{
		"A valid db path should create the repository and run migrations": {
			config: func(t *testing.T) sqlite.RepositoryConfig {
				return sqlite.RepositoryConfig{DBPath: filepath.Join(t.TempDir(), "boostly.db")}
			},
			expErr: false,
		},

		"A missing db path should fail": {
			config: func(t *testing.T) sqlite.RepositoryConfig { return sqlite.RepositoryConfig{} },
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			repo, err := sqlite.NewRepository(context.Background(), test.config(t))

			if test.expErr {
				require.Error(err)
			} else {
				require.NoError(err)
				require.NotNil(repo)
				repo.Close()
			}
		})
	}
}

func TestRepositorySessions(t *testing.T) {
	session := model.StoredSession{
		Draft: model.TaskDraft{
			Platform:     model.PlatformStep{Platform: model.PlatformTikTok},
			TaskType:     model.TaskTypeStep{Type: model.TaskTypeView, TargetURL: "https://tiktok.com/@u/video/1"},
			Instructions: model.InstructionsStep{Title: "Watch", Description: "Watch the whole video"},
			Budget:       model.BudgetStep{BudgetPerTask: 0.5, TaskCount: 100, ServiceFee: 5, TotalCost: 55},
			Targeting:    model.TargetingStep{Criteria: map[string]string{"country": "es"}},
		},
		CurrentStepIndex: model.StepTargeting,
		CompletedSteps:   []int{0, 1, 2, 3},
		SavedAt:          time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}

	t.Run("Getting an empty slot should return not found", func(t *testing.T) {
		repo := newTestRepository(t)

		_, err := repo.GetSession(context.Background(), storage.SessionSlotDraft)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})

	t.Run("Saving and getting a draft session should round-trip the JSON payload", func(t *testing.T) {
		repo := newTestRepository(t)

		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotDraft, session))

		got, err := repo.GetSession(context.Background(), storage.SessionSlotDraft)
		require.NoError(t, err)
		assert.Equal(t, session, *got)
	})

	t.Run("Saving twice should upsert the slot row", func(t *testing.T) {
		repo := newTestRepository(t)

		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotDraft, session))

		updated := session
		updated.CurrentStepIndex = model.StepPlatform
		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotDraft, updated))

		got, err := repo.GetSession(context.Background(), storage.SessionSlotDraft)
		require.NoError(t, err)
		assert.Equal(t, model.StepPlatform, got.CurrentStepIndex)
	})

	t.Run("Saving an edit session without task id should fail", func(t *testing.T) {
		repo := newTestRepository(t)

		err := repo.SaveSession(context.Background(), storage.SessionSlotEdit, session)
		assert.True(t, errors.Is(err, model.ErrNotValid))
	})

	t.Run("Edit and draft slots should be independent", func(t *testing.T) {
		repo := newTestRepository(t)

		edit := session
		edit.TaskID = "01HTASK"
		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotEdit, edit))
		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotDraft, session))

		gotEdit, err := repo.GetSession(context.Background(), storage.SessionSlotEdit)
		require.NoError(t, err)
		assert.Equal(t, "01HTASK", gotEdit.TaskID)

		gotDraft, err := repo.GetSession(context.Background(), storage.SessionSlotDraft)
		require.NoError(t, err)
		assert.Empty(t, gotDraft.TaskID)
	})

	t.Run("Deleting a slot should remove it and be idempotent", func(t *testing.T) {
		repo := newTestRepository(t)

		require.NoError(t, repo.SaveSession(context.Background(), storage.SessionSlotDraft, session))
		require.NoError(t, repo.DeleteSession(context.Background(), storage.SessionSlotDraft))
		require.NoError(t, repo.DeleteSession(context.Background(), storage.SessionSlotDraft))

		_, err := repo.GetSession(context.Background(), storage.SessionSlotDraft)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}
