package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"intakeflow/internal/port"
)

type unitOfWork struct {
	db *sqlx.DB
}

// NewUnitOfWork creates a UnitOfWork that hands out repositories bound to a
// single PostgreSQL transaction.
func NewUnitOfWork(db *sqlx.DB) port.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.TxRepositories) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unitOfWork.WithinTx begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := port.TxRepositories{
		Customers: &customerRepo{db: tx},
		Reviews:   &customerReviewRepo{db: tx},
		Files:     &customerFileRepo{db: tx},
		Locker:    &advisoryLocker{db: tx},
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().Warn("unitOfWork.WithinTx: rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unitOfWork.WithinTx commit: %w", err)
	}
	return nil
}

// advisoryLocker takes transaction-scoped advisory locks. The locks are
// released by Postgres when the transaction commits or rolls back.
type advisoryLocker struct {
	db sqlx.ExtContext
}

func (l *advisoryLocker) LockKeys(ctx context.Context, keys ...string) error {
	// Sorted so that two transactions locking overlapping keys cannot deadlock.
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		if _, err := l.db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", k); err != nil {
			return fmt.Errorf("advisoryLocker.LockKeys: %w", err)
		}
	}
	return nil
}
