// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"testing"

	"helpmate/internal/domain/entity"
	"helpmate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock with expectations asserted on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock with expectations asserted on cleanup.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockContactNotifier is a mock implementation of service.ContactNotifier.
type MockContactNotifier struct {
	mock.Mock
}

// NewMockContactNotifier creates a mock with expectations asserted on cleanup.
func NewMockContactNotifier(t *testing.T) *MockContactNotifier {
	m := &MockContactNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockContactNotifier) Notify(ctx context.Context, contact *entity.Contact, alert *entity.Alert) (entity.DeliveryMethod, error) {
	args := m.Called(ctx, contact, alert)

	return args.Get(0).(entity.DeliveryMethod), args.Error(1)
}

func (m *MockContactNotifier) NotifyTest(ctx context.Context, contact *entity.Contact) (entity.DeliveryMethod, error) {
	args := m.Called(ctx, contact)

	return args.Get(0).(entity.DeliveryMethod), args.Error(1)
}
