package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
)

// MockCustomerFileRepo is a mock implementation of port.CustomerFileRepository.
type MockCustomerFileRepo struct {
	mock.Mock
}

func (m *MockCustomerFileRepo) Create(ctx context.Context, file *domain.CustomerFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockCustomerFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerFile), args.Error(1)
}

func (m *MockCustomerFileRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerFile, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerFile), args.Error(1)
}

func (m *MockCustomerFileRepo) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]domain.CustomerFile, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerFile), args.Error(1)
}

func (m *MockCustomerFileRepo) ReassignFromReview(ctx context.Context, reviewID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, reviewID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
