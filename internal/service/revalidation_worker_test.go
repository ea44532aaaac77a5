package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/domain"
	"intakeflow/internal/service"
	"intakeflow/mocks"
)

func TestRevalidationWorker_RunOnce(t *testing.T) {
	customers := new(mocks.MockCustomerRepo)
	reconciler := new(mocks.MockReconciliationService)
	w := service.NewRevalidationWorker(customers, reconciler, service.RevalidationConfig{BatchSize: 2, Concurrency: 2})

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	customers.On("ListStale", mock.Anything, mock.AnythingOfType("time.Time"), 2).
		Return([]domain.Customer{{ID: a}, {ID: b}}, nil).Once()
	customers.On("ListStale", mock.Anything, mock.AnythingOfType("time.Time"), 2).
		Return([]domain.Customer{{ID: c}}, nil).Once()
	customers.On("ListStale", mock.Anything, mock.AnythingOfType("time.Time"), 2).
		Return([]domain.Customer{}, nil).Once()
	reconciler.On("Revalidate", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(&domain.Customer{}, nil)

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	reconciler.AssertNumberOfCalls(t, "Revalidate", 3)
}

func TestRevalidationWorker_RunOnce_StopsWhenNothingSucceeds(t *testing.T) {
	customers := new(mocks.MockCustomerRepo)
	reconciler := new(mocks.MockReconciliationService)
	w := service.NewRevalidationWorker(customers, reconciler, service.RevalidationConfig{BatchSize: 10})

	id := uuid.New()
	customers.On("ListStale", mock.Anything, mock.Anything, 10).Return([]domain.Customer{{ID: id}}, nil)
	reconciler.On("Revalidate", mock.Anything, id).Return(nil, errors.New("db down"))

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	customers.AssertNumberOfCalls(t, "ListStale", 1)
}

func TestRevalidationWorker_RunOnce_ListError(t *testing.T) {
	customers := new(mocks.MockCustomerRepo)
	w := service.NewRevalidationWorker(customers, new(mocks.MockReconciliationService), service.RevalidationConfig{})

	customers.On("ListStale", mock.Anything, mock.Anything, 50).Return(nil, errors.New("timeout"))

	_, err := w.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRevalidationWorker_StartStopsOnCancel(t *testing.T) {
	w := service.NewRevalidationWorker(new(mocks.MockCustomerRepo), new(mocks.MockReconciliationService),
		service.RevalidationConfig{PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
