package repository

import (
	"context"
	"testing"
	"time"

	"helpmate/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAlertRepository is a mock implementation of repository.AlertRepository.
type MockAlertRepository struct {
	mock.Mock
}

// NewMockAlertRepository creates a mock with expectations asserted on cleanup.
func NewMockAlertRepository(t *testing.T) *MockAlertRepository {
	m := &MockAlertRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Alert), args.Error(1)
}

func (m *MockAlertRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *entity.AlertStatus) ([]*entity.Alert, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Alert), args.Error(1)
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	args := m.Called(ctx, alert)

	return args.Error(0)
}

func (m *MockAlertRepository) CloseFromActive(ctx context.Context, id uuid.UUID, target entity.AlertStatus, by entity.ResolverKind, at time.Time, responseSeconds int) (bool, error) {
	args := m.Called(ctx, id, target, by, at, responseSeconds)

	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) CancelActiveByUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, userID, at)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockAlertRepository) AppendNotifications(ctx context.Context, alertID uuid.UUID, records []entity.NotificationRecord) error {
	args := m.Called(ctx, alertID, records)

	return args.Error(0)
}
