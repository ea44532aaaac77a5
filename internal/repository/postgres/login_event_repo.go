package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

type loginEventRepo struct {
	db *sqlx.DB
}

// NewLoginEventRepo creates a new PostgreSQL-backed LoginEventRepository.
func NewLoginEventRepo(db *sqlx.DB) port.LoginEventRepository {
	return &loginEventRepo{db: db}
}

func (r *loginEventRepo) Create(ctx context.Context, e *domain.LoginEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_history (id, username, ip_address, city, country, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Username, e.IPAddress, e.City, e.Country, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("loginEventRepo.Create: %w", err)
	}
	return nil
}

func (r *loginEventRepo) List(ctx context.Context, offset, limit int) ([]domain.LoginEvent, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM login_history"); err != nil {
		return nil, 0, fmt.Errorf("loginEventRepo.List count: %w", err)
	}

	var events []domain.LoginEvent
	err := r.db.SelectContext(ctx, &events,
		"SELECT * FROM login_history ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("loginEventRepo.List: %w", err)
	}
	return events, total, nil
}
