package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
)

// MockGeneratedFileRepo is a mock implementation of port.GeneratedFileRepository.
type MockGeneratedFileRepo struct {
	mock.Mock
}

func (m *MockGeneratedFileRepo) Create(ctx context.Context, file *domain.GeneratedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockGeneratedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedFile), args.Error(1)
}

func (m *MockGeneratedFileRepo) List(ctx context.Context, offset, limit int) ([]domain.GeneratedFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GeneratedFile), args.Int(1), args.Error(2)
}
