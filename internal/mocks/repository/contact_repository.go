package repository

import (
	"context"
	"testing"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of repository.ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

// NewMockContactRepository creates a mock with expectations asserted on cleanup.
func NewMockContactRepository(t *testing.T) *MockContactRepository {
	m := &MockContactRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)

	return args.Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)

	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockContactRepository) RecordNotification(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)

	return args.Error(0)
}
