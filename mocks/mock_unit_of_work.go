package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeflow/internal/port"
)

// MockUnitOfWork is a mock implementation of port.UnitOfWork. WithinTx runs
// fn against Repos unless the expectation returns an error.
type MockUnitOfWork struct {
	mock.Mock
	Repos port.TxRepositories
}

func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.TxRepositories) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Repos)
}

// MockKeyLocker is a mock implementation of port.KeyLocker.
type MockKeyLocker struct {
	mock.Mock
}

func (m *MockKeyLocker) LockKeys(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
