package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"intakeflow/internal/port"
)

// RevalidationConfig holds settings for the revalidation worker.
type RevalidationConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
}

// RevalidationWorker re-runs the external email and phone checks for
// customers whose verification flags are still unknown.
type RevalidationWorker struct {
	customers  port.CustomerRepository
	reconciler ReconciliationService
	cfg        RevalidationConfig
	wg         sync.WaitGroup
}

// NewRevalidationWorker creates a new RevalidationWorker.
func NewRevalidationWorker(customers port.CustomerRepository, reconciler ReconciliationService, cfg RevalidationConfig) *RevalidationWorker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Hour
	}
	return &RevalidationWorker{
		customers:  customers,
		reconciler: reconciler,
		cfg:        cfg,
	}
}

// Start runs RunOnce on every tick until ctx is canceled.
func (w *RevalidationWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	zap.L().Info("revalidationWorker: started",
		zap.Duration("poll", w.cfg.PollInterval), zap.Int("concurrency", w.cfg.Concurrency))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("revalidationWorker: shutting down")
			return
		case <-ticker.C:
			n, err := w.RunOnce(ctx)
			if err != nil && ctx.Err() == nil {
				zap.L().Error("revalidationWorker: run failed", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Info("revalidationWorker: revalidated customers", zap.Int("count", n))
			}
		}
	}
}

// RunOnce revalidates every customer with unknown flags that was last updated
// before the run started. Revalidated rows move past the cutoff, so a run
// terminates even when a check keeps failing.
func (w *RevalidationWorker) RunOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC()
	sem := make(chan struct{}, w.cfg.Concurrency)
	var mu sync.Mutex
	done := 0

	for {
		batch, err := w.customers.ListStale(ctx, cutoff, w.cfg.BatchSize)
		if err != nil {
			return done, err
		}
		if len(batch) == 0 {
			return done, nil
		}

		before := done
		for i := range batch {
			id := batch[i].ID
			sem <- struct{}{} // acquire
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				defer func() { <-sem }() // release

				if _, err := w.reconciler.Revalidate(ctx, id); err != nil {
					zap.L().Warn("revalidationWorker: customer failed",
						zap.String("id", id.String()), zap.Error(err))
					return
				}
				mu.Lock()
				done++
				mu.Unlock()
			}()
		}
		w.wg.Wait()

		if ctx.Err() != nil {
			return done, ctx.Err()
		}
		// Rows that keep failing stay before the cutoff.
		if done == before {
			return done, nil
		}
	}
}
