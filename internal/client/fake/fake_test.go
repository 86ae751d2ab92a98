package fake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/client/fake"
	"github.com/boostly/boostly/internal/model"
)

func validDraft() model.TaskDraft {
	return model.TaskDraft{
		Platform:     model.PlatformStep{Platform: model.PlatformInstagram},
		TaskType:     model.TaskTypeStep{Type: model.TaskTypeLike, TargetURL: "https://instagram.com/p/1"},
		Instructions: model.InstructionsStep{Title: "Like my post", Description: "Like the linked post"},
		Budget:       model.BudgetStep{BudgetPerTask: 5, TaskCount: 2, ServiceFee: 1, TotalCost: 11},
		Targeting:    model.TargetingStep{},
	}
}

func newTestBackend(t *testing.T) *fake.Backend {
	t.Helper()

	b, err := fake.NewBackend(fake.BackendConfig{
		Creator: model.Creator{ID: "owner-1", DisplayName: "Owner"},
	})
	require.NoError(t, err)

	return b
}

func TestBackendCreateTask(t *testing.T) {
	tests := map[string]struct {
		draft  func() model.TaskDraft
		expErr bool
	}{
		"A valid draft should create a draft-status task": {
			draft: validDraft,
		},

		"A draft without platform should be rejected": {
			draft: func() model.TaskDraft {
				d := validDraft()
				d.Platform.Platform = ""
				return d
			},
			expErr: true,
		},

		"A draft without task type should be rejected": {
			draft: func() model.TaskDraft {
				d := validDraft()
				d.TaskType.Type = ""
				return d
			},
			expErr: true,
		},

		"A draft with zero budget should be rejected": {
			draft: func() model.TaskDraft {
				d := validDraft()
				d.Budget.BudgetPerTask = 0
				return d
			},
			expErr: true,
		},

		"A draft with zero slots should be rejected": {
			draft: func() model.TaskDraft {
				d := validDraft()
				d.Budget.TaskCount = 0
				return d
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			b := newTestBackend(t)
			task, err := b.CreateTask(context.Background(), test.draft())

			if test.expErr {
				require.Error(err)
				assert.True(errors.Is(err, model.ErrRejected))
			} else {
				require.NoError(err)
				assert.NotEmpty(task.ID)
				assert.Equal(model.TaskStatusDraft, task.Status)
				assert.Equal("owner-1", task.Creator.ID)
				assert.Equal(2, task.TotalSlots)
				assert.Equal(0, task.FilledSlots)
			}
		})
	}
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("Publish, pause, resume and cancel should follow the status machine", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(err)

		published, err := b.PublishTask(ctx, created.ID)
		require.NoError(err)
		assert.Equal(model.TaskStatusActive, published.Status)

		paused, err := b.PauseTask(ctx, created.ID)
		require.NoError(err)
		assert.Equal(model.TaskStatusPaused, paused.Status)

		resumed, err := b.ResumeTask(ctx, created.ID)
		require.NoError(err)
		assert.Equal(model.TaskStatusActive, resumed.Status)

		cancelled, err := b.CancelTask(ctx, created.ID)
		require.NoError(err)
		assert.Equal(model.TaskStatusCancelled, cancelled.Status)
	})

	t.Run("Publishing a non-draft task should be rejected", func(t *testing.T) {
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(t, err)
		_, err = b.PublishTask(ctx, created.ID)
		require.NoError(t, err)

		_, err = b.PublishTask(ctx, created.ID)
		assert.True(t, errors.Is(err, model.ErrRejected))
	})

	t.Run("Pausing a draft task should be rejected", func(t *testing.T) {
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(t, err)

		_, err = b.PauseTask(ctx, created.ID)
		assert.True(t, errors.Is(err, model.ErrRejected))
	})
}

func TestBackendClaim(t *testing.T) {
	t.Run("Claiming fills slots and moves to in_progress on the last one", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(err)
		_, err = b.PublishTask(ctx, created.ID)
		require.NoError(err)

		assignment, err := b.ClaimTask(ctx, created.ID, "performer-1")
		require.NoError(err)
		assert.Equal(created.ID, assignment.TaskID)
		assert.Equal("performer-1", assignment.PerformerID)

		task, err := b.GetTaskByID(ctx, created.ID)
		require.NoError(err)
		assert.Equal(1, task.FilledSlots)
		assert.Equal(model.TaskStatusActive, task.Status)

		_, err = b.ClaimTask(ctx, created.ID, "performer-2")
		require.NoError(err)

		task, err = b.GetTaskByID(ctx, created.ID)
		require.NoError(err)
		assert.Equal(0, task.AvailableSlots())
		assert.Equal(model.TaskStatusInProgress, task.Status)
	})

	t.Run("Owners cannot claim their own tasks", func(t *testing.T) {
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(t, err)
		_, err = b.PublishTask(ctx, created.ID)
		require.NoError(t, err)

		_, err = b.ClaimTask(ctx, created.ID, "owner-1")
		assert.True(t, errors.Is(err, model.ErrRejected))
	})

	t.Run("Claiming a full task is rejected", func(t *testing.T) {
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(t, err)
		_, err = b.PublishTask(ctx, created.ID)
		require.NoError(t, err)

		_, err = b.ClaimTask(ctx, created.ID, "performer-1")
		require.NoError(t, err)
		_, err = b.ClaimTask(ctx, created.ID, "performer-2")
		require.NoError(t, err)

		_, err = b.ClaimTask(ctx, created.ID, "performer-3")
		assert.True(t, errors.Is(err, model.ErrRejected))
	})
}

func TestBackendSubmitProof(t *testing.T) {
	t.Run("A proof with no url and no description fails before touching the store", func(t *testing.T) {
		b := newTestBackend(t)

		_, err := b.SubmitTaskProof(context.Background(), model.ProofSubmission{TaskID: "t1"})
		assert.True(t, errors.Is(err, model.ErrNotValid))
	})

	t.Run("A proof for an in-progress task is recorded", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(err)
		_, err = b.PublishTask(ctx, created.ID)
		require.NoError(err)
		_, err = b.ClaimTask(ctx, created.ID, "performer-1")
		require.NoError(err)
		_, err = b.ClaimTask(ctx, created.ID, "performer-2")
		require.NoError(err)

		submission, err := b.SubmitTaskProof(ctx, model.ProofSubmission{
			TaskID: created.ID,
			URL:    "https://example.com/proof.png",
		})
		require.NoError(err)
		assert.NotEmpty(submission.ID)
		assert.Equal(created.ID, submission.TaskID)
	})

	t.Run("A proof for a task that is not in progress is rejected", func(t *testing.T) {
		ctx := context.Background()
		b := newTestBackend(t)

		created, err := b.CreateTask(ctx, validDraft())
		require.NoError(t, err)

		_, err = b.SubmitTaskProof(ctx, model.ProofSubmission{TaskID: created.ID, Description: "done"})
		assert.True(t, errors.Is(err, model.ErrRejected))
	})
}

func TestBackendGetTasks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	b := newTestBackend(t)

	igDraft := validDraft()
	_, err := b.CreateTask(ctx, igDraft)
	require.NoError(err)

	ttDraft := validDraft()
	ttDraft.Platform.Platform = model.PlatformTikTok
	ttDraft.TaskType.Type = model.TaskTypeView
	ttDraft.Budget.BudgetPerTask = 0.5
	tt, err := b.CreateTask(ctx, ttDraft)
	require.NoError(err)
	_, err = b.PublishTask(ctx, tt.ID)
	require.NoError(err)

	// Filter by platform.
	platform := model.PlatformTikTok
	page, err := b.GetTasks(ctx, client.TaskFilters{Platform: &platform})
	require.NoError(err)
	assert.Len(page.Tasks, 1)
	assert.Equal(tt.ID, page.Tasks[0].ID)

	// Filter by status.
	status := model.TaskStatusDraft
	page, err = b.GetTasks(ctx, client.TaskFilters{Status: &status})
	require.NoError(err)
	assert.Len(page.Tasks, 1)

	// Budget range.
	minBudget := 1.0
	page, err = b.GetTasks(ctx, client.TaskFilters{MinBudget: &minBudget})
	require.NoError(err)
	assert.Len(page.Tasks, 1)

	// Pagination defaults.
	page, err = b.GetTasks(ctx, client.TaskFilters{})
	require.NoError(err)
	assert.Equal(1, page.Page)
	assert.Equal(20, page.Limit)
	assert.Equal(2, page.Total)
}
