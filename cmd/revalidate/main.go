// Command revalidate re-runs the email and phone checks once for every
// customer whose verification flags are still unknown.
// Usage: go run ./cmd/revalidate
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"intakeflow/internal/config"
	"intakeflow/internal/repository/postgres"
	"intakeflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	customers := postgres.NewCustomerRepo(db)
	reconciler := service.NewReconciliationService(
		postgres.NewUnitOfWork(db),
		customers,
		postgres.NewCustomerReviewRepo(db),
		service.NewValidators(cfg.Validation),
	)
	worker := service.NewRevalidationWorker(customers, reconciler, service.RevalidationConfig{
		BatchSize:   cfg.Revalidation.BatchSize,
		Concurrency: cfg.Revalidation.Concurrency,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	n, err := worker.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("revalidating customers (%d done): %w", n, err)
	}
	log.Printf("Revalidation complete: %d customers in %s", n, time.Since(start).Round(time.Millisecond))
	return nil
}
