package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
)

// MockLoginEventRepo is a mock implementation of port.LoginEventRepository.
type MockLoginEventRepo struct {
	mock.Mock
}

func (m *MockLoginEventRepo) Create(ctx context.Context, event *domain.LoginEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLoginEventRepo) List(ctx context.Context, offset, limit int) ([]domain.LoginEvent, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LoginEvent), args.Int(1), args.Error(2)
}
