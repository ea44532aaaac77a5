package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

type customerReviewRepo struct {
	db sqlx.ExtContext
}

// NewCustomerReviewRepo creates a new PostgreSQL-backed CustomerReviewRepository.
func NewCustomerReviewRepo(db *sqlx.DB) port.CustomerReviewRepository {
	return &customerReviewRepo{db: db}
}

func (r *customerReviewRepo) Create(ctx context.Context, rv *domain.CustomerReview) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	query := `INSERT INTO customers_review
		(id, first_name, last_name, email, phone, job, city, country, reference, date,
		 verified_email, verified_domain, verified_phone, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.FirstName, rv.LastName, rv.Email, rv.Phone, rv.Job, rv.City, rv.Country,
		rv.Reference, rv.Date, rv.VerifiedEmail, rv.VerifiedDomain, rv.VerifiedPhone,
		rv.Type, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("customerReviewRepo.Create: %w", err)
	}
	return nil
}

func (r *customerReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerReview, error) {
	var rv domain.CustomerReview
	err := sqlx.GetContext(ctx, r.db, &rv, "SELECT * FROM customers_review WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("customerReviewRepo.GetByID: %w", err)
	}
	return &rv, nil
}

// List returns reviews newest first. An empty reviewType lists every type.
func (r *customerReviewRepo) List(ctx context.Context, reviewType domain.ReviewType, offset, limit int) ([]domain.CustomerReview, int, error) {
	var total int
	err := sqlx.GetContext(ctx, r.db, &total,
		"SELECT COUNT(*) FROM customers_review WHERE ($1 = '' OR type = $1)", reviewType)
	if err != nil {
		return nil, 0, fmt.Errorf("customerReviewRepo.List count: %w", err)
	}

	var reviews []domain.CustomerReview
	err = sqlx.SelectContext(ctx, r.db, &reviews,
		`SELECT * FROM customers_review WHERE ($1 = '' OR type = $1)
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		reviewType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerReviewRepo.List: %w", err)
	}
	return reviews, total, nil
}

func (r *customerReviewRepo) Update(ctx context.Context, rv *domain.CustomerReview) error {
	rv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers_review SET first_name = $1, last_name = $2, email = $3, phone = $4,
		 job = $5, city = $6, country = $7, reference = $8, date = $9,
		 verified_email = $10, verified_domain = $11, verified_phone = $12, type = $13,
		 updated_at = $14
		 WHERE id = $15`,
		rv.FirstName, rv.LastName, rv.Email, rv.Phone, rv.Job, rv.City, rv.Country,
		rv.Reference, rv.Date, rv.VerifiedEmail, rv.VerifiedDomain, rv.VerifiedPhone,
		rv.Type, rv.UpdatedAt, rv.ID)
	if err != nil {
		return fmt.Errorf("customerReviewRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *customerReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers_review WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("customerReviewRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
