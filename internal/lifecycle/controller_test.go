package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly/internal/client/clientmock"
	"github.com/boostly/boostly/internal/lifecycle"
	"github.com/boostly/boostly/internal/model"
)

func draftTask() *model.Task {
	return &model.Task{
		ID:         "t1",
		Status:     model.TaskStatusDraft,
		TotalSlots: 10,
		Creator:    model.Creator{ID: "owner-1"},
	}
}

func activeTask() *model.Task {
	t := draftTask()
	t.Status = model.TaskStatusActive
	return t
}

func newTestController(t *testing.T, backend *clientmock.MockBackend, viewerID string) *lifecycle.Controller {
	t.Helper()

	c, err := lifecycle.NewController(lifecycle.ControllerConfig{
		Backend:  backend,
		ViewerID: viewerID,
	})
	require.NoError(t, err)

	return c
}

func TestControllerLoad(t *testing.T) {
	t.Run("Loading a task derives the viewer's actions", func(t *testing.T) {
		assert := assert.New(t)

		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)

		c := newTestController(t, mb, "owner-1")
		view, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		assert.Equal("t1", view.Task.ID)
		assert.Equal([]model.TaskAction{model.TaskActionPublish, model.TaskActionCancel, model.TaskActionEdit}, view.Actions)
		assert.False(view.Busy)
		assert.NoError(view.LastError)
		mb.AssertExpectations(t)
	})

	t.Run("A load failure surfaces the error and keeps the view empty", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(nil, fmt.Errorf("boom: %w", model.ErrNotFound))

		c := newTestController(t, mb, "owner-1")
		view, err := c.Load(context.Background(), "t1")

		assert.True(t, errors.Is(err, model.ErrNotFound))
		assert.Empty(t, view.Task.ID)
	})
}

func TestControllerMutations(t *testing.T) {
	t.Run("A successful publish refetches the task and rederives actions", func(t *testing.T) {
		assert := assert.New(t)

		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)
		mb.On("PublishTask", mock.Anything, "t1").Once().Return(activeTask(), nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(activeTask(), nil)

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		view, err := c.Publish(context.Background())
		require.NoError(t, err)

		assert.Equal(model.TaskStatusActive, view.Task.Status)
		assert.Equal([]model.TaskAction{model.TaskActionPause, model.TaskActionCancel, model.TaskActionEdit}, view.Actions)
		assert.False(view.Busy)
		assert.NoError(view.LastError)
		mb.AssertExpectations(t)
	})

	t.Run("A failed mutation leaves the task state untouched", func(t *testing.T) {
		assert := assert.New(t)

		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)
		mb.On("PublishTask", mock.Anything, "t1").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrRejected))

		c := newTestController(t, mb, "owner-1")
		before, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		view, err := c.Publish(context.Background())
		require.Error(t, err)
		assert.True(errors.Is(err, model.ErrRejected))

		assert.Equal(before.Task, view.Task)
		assert.Equal(before.Actions, view.Actions)
		assert.False(view.Busy)
		assert.Error(view.LastError)

		// No refetch happened, the single GetTaskByID expectation is the load.
		mb.AssertExpectations(t)
	})

	t.Run("Starting a new mutation clears the previous error", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)
		mb.On("PublishTask", mock.Anything, "t1").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrRejected))
		mb.On("PublishTask", mock.Anything, "t1").Once().Return(activeTask(), nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(activeTask(), nil)

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		_, err = c.Publish(context.Background())
		require.Error(t, err)
		require.Error(t, c.View().LastError)

		view, err := c.Publish(context.Background())
		require.NoError(t, err)
		assert.NoError(t, view.LastError)
	})

	t.Run("An unavailable action is rejected without touching the backend", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		// Pausing a draft task is never offered.
		_, err = c.Pause(context.Background())
		assert.True(t, errors.Is(err, model.ErrRejected))
		mb.AssertExpectations(t)
	})

	t.Run("Mutating with no task loaded fails", func(t *testing.T) {
		c := newTestController(t, &clientmock.MockBackend{}, "owner-1")
		_, err := c.Publish(context.Background())
		assert.True(t, errors.Is(err, model.ErrNotValid))
	})

	t.Run("A second operation while one is in flight is rejected", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		// Fire a reentrant operation while the first one is mid flight.
		mb.On("PublishTask", mock.Anything, "t1").Once().Run(func(args mock.Arguments) {
			_, err := c.Cancel(context.Background())
			assert.True(t, errors.Is(err, model.ErrActionInProgress))
		}).Return(activeTask(), nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(activeTask(), nil)

		_, err = c.Publish(context.Background())
		require.NoError(t, err)
		mb.AssertExpectations(t)
	})

	t.Run("A mutation that succeeds but fails to refresh keeps the stale view with the error", func(t *testing.T) {
		assert := assert.New(t)

		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(draftTask(), nil)
		mb.On("PublishTask", mock.Anything, "t1").Once().Return(activeTask(), nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(nil, fmt.Errorf("boom"))

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		view, err := c.Publish(context.Background())
		require.Error(t, err)

		assert.Equal(model.TaskStatusDraft, view.Task.Status)
		assert.Error(view.LastError)
		assert.False(view.Busy)
	})
}

func TestControllerClaim(t *testing.T) {
	t.Run("A viewer claims with their own identity", func(t *testing.T) {
		assert := assert.New(t)

		claimed := activeTask()
		claimed.FilledSlots = 1

		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(activeTask(), nil)
		mb.On("ClaimTask", mock.Anything, "t1", "performer-1").Once().Return(&model.Assignment{ID: "a1", TaskID: "t1"}, nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(claimed, nil)

		c := newTestController(t, mb, "performer-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		view, err := c.Claim(context.Background())
		require.NoError(t, err)
		assert.Equal(1, view.Task.FilledSlots)
		mb.AssertExpectations(t)
	})

	t.Run("An unauthenticated viewer cannot claim", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(activeTask(), nil)

		c := newTestController(t, mb, "")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		_, err = c.Claim(context.Background())
		assert.True(t, errors.Is(err, model.ErrRejected))
		mb.AssertExpectations(t)
	})
}

func TestControllerSubmitProof(t *testing.T) {
	inProgress := func() *model.Task {
		t := draftTask()
		t.Status = model.TaskStatusInProgress
		t.FilledSlots = 10
		return t
	}

	t.Run("An empty proof fails before any request is made", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(inProgress(), nil)

		c := newTestController(t, mb, "performer-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		_, err = c.SubmitProof(context.Background(), "", "")
		assert.True(t, errors.Is(err, model.ErrNotValid))
		mb.AssertNotCalled(t, "SubmitTaskProof", mock.Anything, mock.Anything)
	})

	t.Run("A valid proof is submitted and the task refetched", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(inProgress(), nil)
		mb.On("SubmitTaskProof", mock.Anything, mock.MatchedBy(func(p model.ProofSubmission) bool {
			return p.TaskID == "t1" && p.URL == "https://example.com/proof.png"
		})).Once().Return(&model.Submission{ID: "s1", TaskID: "t1"}, nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(inProgress(), nil)

		c := newTestController(t, mb, "performer-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		_, err = c.SubmitProof(context.Background(), "https://example.com/proof.png", "")
		require.NoError(t, err)
		mb.AssertExpectations(t)
	})

	t.Run("The task owner can also submit proof, the backend decides eligibility", func(t *testing.T) {
		mb := &clientmock.MockBackend{}
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(inProgress(), nil)
		mb.On("SubmitTaskProof", mock.Anything, mock.MatchedBy(func(p model.ProofSubmission) bool {
			return p.TaskID == "t1" && p.Description == "Done"
		})).Once().Return(&model.Submission{ID: "s1", TaskID: "t1"}, nil)
		mb.On("GetTaskByID", mock.Anything, "t1").Once().Return(inProgress(), nil)

		c := newTestController(t, mb, "owner-1")
		_, err := c.Load(context.Background(), "t1")
		require.NoError(t, err)

		_, err = c.SubmitProof(context.Background(), "", "Done")
		require.NoError(t, err)
		mb.AssertExpectations(t)
	})
}
