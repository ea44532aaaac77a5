package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"intakeflow/internal/config"
)

const (
	// sqlStateUniqueViolation is the Postgres SQLSTATE for unique_violation.
	sqlStateUniqueViolation = "23505"

	customerEmailIndex = "idx_customers_email_unique"
)

// NewDB opens the pgx-backed connection pool and verifies it with a ping.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	zap.L().Info("postgres: connected",
		zap.String("host", cfg.Host), zap.String("db", cfg.Name), zap.Int("max_open", cfg.MaxOpen))
	return db, nil
}

// isDuplicateEmail reports whether err is a violation of the
// unique index on customer emails.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateUniqueViolation {
		return false
	}
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == customerEmailIndex
}
