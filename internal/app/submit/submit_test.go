package submit_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly/internal/app/submit"
	"github.com/boostly/boostly/internal/client/clientmock"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
	"github.com/boostly/boostly/internal/storage/memory"
	"github.com/boostly/boostly/internal/wizard"
)

func newTestSession(t *testing.T, repo storage.SessionRepository) *wizard.Session {
	t.Helper()

	s, err := wizard.NewSession(context.Background(), wizard.SessionConfig{
		Repository:     repo,
		AutoSaveWindow: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func newTestRepo(t *testing.T) *memory.Repository {
	t.Helper()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	return repo
}

func fillSession(s *wizard.Session) {
	s.SetPlatform(model.PlatformStep{Platform: model.PlatformInstagram})
	s.SetTaskType(model.TaskTypeStep{Type: model.TaskTypeLike, TargetURL: "https://instagram.com/p/1"})
	s.SetInstructions(model.InstructionsStep{Title: "Like my post", Description: "Like the linked post"})
	s.SetBudget(model.BudgetStep{BudgetPerTask: 5, TaskCount: 10, ServiceFee: 2.5, TotalCost: 52.5})
	s.SetTargeting(model.TargetingStep{})
}

func TestServiceRun(t *testing.T) {
	t.Run("An incomplete session is rejected without touching the backend", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		s := newTestSession(t, newTestRepo(t))
		s.SetPlatform(model.PlatformStep{Platform: model.PlatformInstagram})

		svc, err := submit.NewService(submit.ServiceConfig{Backend: mb})
		require.NoError(t, err)

		_, err = svc.Run(context.Background(), submit.Request{Session: s})
		assert.True(t, errors.Is(err, model.ErrNotValid))
		mb.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
	})

	t.Run("A complete draft session is created and the slots are cleared", func(t *testing.T) {
		assert := assert.New(t)
		ctx := context.Background()
		repo := newTestRepo(t)

		s := newTestSession(t, repo)
		fillSession(s)
		require.NoError(t, s.SaveNow(ctx))

		mb := &clientmock.MockBackend{}
		mb.On("CreateTask", mock.Anything, mock.MatchedBy(func(d model.TaskDraft) bool {
			return d.Platform.Platform == model.PlatformInstagram && d.Budget.TaskCount == 10
		})).Once().Return(&model.Task{ID: "t-new", Status: model.TaskStatusDraft}, nil)

		svc, err := submit.NewService(submit.ServiceConfig{Backend: mb})
		require.NoError(t, err)

		task, err := svc.Run(ctx, submit.Request{Session: s})
		require.NoError(t, err)
		assert.Equal("t-new", task.ID)

		_, err = repo.GetSession(ctx, storage.SessionSlotDraft)
		assert.ErrorIs(err, model.ErrNotFound)
		mb.AssertExpectations(t)
	})

	t.Run("An edit session updates the bound task", func(t *testing.T) {
		ctx := context.Background()
		repo := newTestRepo(t)

		s := newTestSession(t, repo)
		require.NoError(t, s.StartEdit(ctx, model.Task{
			ID:            "t1",
			Platform:      model.PlatformInstagram,
			Type:          model.TaskTypeLike,
			TargetURL:     "https://instagram.com/p/1",
			Title:         "Like my post",
			Description:   "Like the linked post",
			BudgetPerTask: 5,
			TotalSlots:    10,
			ServiceFee:    2.5,
			TotalCost:     52.5,
		}))

		mb := &clientmock.MockBackend{}
		mb.On("UpdateTask", mock.Anything, "t1", mock.Anything).Once().Return(&model.Task{ID: "t1"}, nil)

		svc, err := submit.NewService(submit.ServiceConfig{Backend: mb})
		require.NoError(t, err)

		_, err = svc.Run(ctx, submit.Request{Session: s})
		require.NoError(t, err)

		_, err = repo.GetSession(ctx, storage.SessionSlotEdit)
		assert.ErrorIs(t, err, model.ErrNotFound)
		mb.AssertExpectations(t)
	})

	t.Run("A backend rejection leaves the persisted draft intact", func(t *testing.T) {
		ctx := context.Background()
		repo := newTestRepo(t)

		s := newTestSession(t, repo)
		fillSession(s)
		require.NoError(t, s.SaveNow(ctx))

		mb := &clientmock.MockBackend{}
		mb.On("CreateTask", mock.Anything, mock.Anything).Once().Return(nil, fmt.Errorf("nope: %w", model.ErrRejected))

		svc, err := submit.NewService(submit.ServiceConfig{Backend: mb})
		require.NoError(t, err)

		_, err = svc.Run(ctx, submit.Request{Session: s})
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrRejected))

		stored, err := repo.GetSession(ctx, storage.SessionSlotDraft)
		require.NoError(t, err)
		assert.Equal(t, model.PlatformInstagram, stored.Draft.Platform.Platform)
	})
}
