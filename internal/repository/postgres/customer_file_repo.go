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

type customerFileRepo struct {
	db sqlx.ExtContext
}

// NewCustomerFileRepo creates a new PostgreSQL-backed CustomerFileRepository.
func NewCustomerFileRepo(db *sqlx.DB) port.CustomerFileRepository {
	return &customerFileRepo{db: db}
}

func (r *customerFileRepo) Create(ctx context.Context, f *domain.CustomerFile) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.UploadedAt = time.Now().UTC()

	query := `INSERT INTO customer_files
		(id, customer_id, customer_review_id, file_name, file_type, file_size,
		 content_type, s3_bucket, s3_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.CustomerID, f.CustomerReviewID, f.FileName, f.FileType, f.FileSize,
		f.ContentType, f.S3Bucket, f.S3Key, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("customerFileRepo.Create: %w", err)
	}
	return nil
}

func (r *customerFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerFile, error) {
	var f domain.CustomerFile
	err := sqlx.GetContext(ctx, r.db, &f, "SELECT * FROM customer_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("customerFileRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *customerFileRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerFile, error) {
	var files []domain.CustomerFile
	err := sqlx.SelectContext(ctx, r.db, &files,
		"SELECT * FROM customer_files WHERE customer_id = $1 ORDER BY uploaded_at", customerID)
	if err != nil {
		return nil, fmt.Errorf("customerFileRepo.ListByCustomer: %w", err)
	}
	return files, nil
}

func (r *customerFileRepo) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]domain.CustomerFile, error) {
	var files []domain.CustomerFile
	err := sqlx.SelectContext(ctx, r.db, &files,
		"SELECT * FROM customer_files WHERE customer_review_id = $1 ORDER BY uploaded_at", reviewID)
	if err != nil {
		return nil, fmt.Errorf("customerFileRepo.ListByReview: %w", err)
	}
	return files, nil
}

func (r *customerFileRepo) ReassignFromReview(ctx context.Context, reviewID, customerID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customer_files SET customer_id = $1, customer_review_id = NULL
		 WHERE customer_review_id = $2`,
		customerID, reviewID)
	if err != nil {
		return 0, fmt.Errorf("customerFileRepo.ReassignFromReview: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *customerFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customer_files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("customerFileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}
