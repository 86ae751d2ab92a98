package clientmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/model"
)

// MockBackend is a mock implementation of client.Backend.
type MockBackend struct {
	mock.Mock
}

// CreateTask mocks client.Backend.CreateTask.
func (m *MockBackend) CreateTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	args := m.Called(ctx, draft)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// UpdateTask mocks client.Backend.UpdateTask.
func (m *MockBackend) UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (*model.Task, error) {
	args := m.Called(ctx, id, draft)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// GetTaskByID mocks client.Backend.GetTaskByID.
func (m *MockBackend) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// GetTasks mocks client.Backend.GetTasks.
func (m *MockBackend) GetTasks(ctx context.Context, filters client.TaskFilters) (*client.TaskPage, error) {
	args := m.Called(ctx, filters)
	p, _ := args.Get(0).(*client.TaskPage)
	return p, args.Error(1)
}

// ClaimTask mocks client.Backend.ClaimTask.
func (m *MockBackend) ClaimTask(ctx context.Context, taskID, performerID string) (*model.Assignment, error) {
	args := m.Called(ctx, taskID, performerID)
	a, _ := args.Get(0).(*model.Assignment)
	return a, args.Error(1)
}

// PublishTask mocks client.Backend.PublishTask.
func (m *MockBackend) PublishTask(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// PauseTask mocks client.Backend.PauseTask.
func (m *MockBackend) PauseTask(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// ResumeTask mocks client.Backend.ResumeTask.
func (m *MockBackend) ResumeTask(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// CancelTask mocks client.Backend.CancelTask.
func (m *MockBackend) CancelTask(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Task)
	return t, args.Error(1)
}

// SubmitTaskProof mocks client.Backend.SubmitTaskProof.
func (m *MockBackend) SubmitTaskProof(ctx context.Context, proof model.ProofSubmission) (*model.Submission, error) {
	args := m.Called(ctx, proof)
	s, _ := args.Get(0).(*model.Submission)
	return s, args.Error(1)
}
