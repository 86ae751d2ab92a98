package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/storage"
)

// MockSessionRepository is a mock implementation of storage.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// GetSession mocks storage.SessionRepository.GetSession.
func (m *MockSessionRepository) GetSession(ctx context.Context, slot storage.SessionSlot) (*model.StoredSession, error) {
	args := m.Called(ctx, slot)
	s, _ := args.Get(0).(*model.StoredSession)
	return s, args.Error(1)
}

// SaveSession mocks storage.SessionRepository.SaveSession.
func (m *MockSessionRepository) SaveSession(ctx context.Context, slot storage.SessionSlot, s model.StoredSession) error {
	args := m.Called(ctx, slot, s)
	return args.Error(0)
}

// DeleteSession mocks storage.SessionRepository.DeleteSession.
func (m *MockSessionRepository) DeleteSession(ctx context.Context, slot storage.SessionSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}
