package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
)

// MockCustomerReviewRepo is a mock implementation of port.CustomerReviewRepository.
type MockCustomerReviewRepo struct {
	mock.Mock
}

func (m *MockCustomerReviewRepo) Create(ctx context.Context, review *domain.CustomerReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockCustomerReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerReview), args.Error(1)
}

func (m *MockCustomerReviewRepo) List(ctx context.Context, reviewType domain.ReviewType, offset, limit int) ([]domain.CustomerReview, int, error) {
	args := m.Called(ctx, reviewType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CustomerReview), args.Int(1), args.Error(2)
}

func (m *MockCustomerReviewRepo) Update(ctx context.Context, review *domain.CustomerReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockCustomerReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
