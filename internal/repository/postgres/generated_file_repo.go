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

type generatedFileRepo struct {
	db *sqlx.DB
}

// NewGeneratedFileRepo creates a new PostgreSQL-backed GeneratedFileRepository.
func NewGeneratedFileRepo(db *sqlx.DB) port.GeneratedFileRepository {
	return &generatedFileRepo{db: db}
}

func (r *generatedFileRepo) Create(ctx context.Context, f *domain.GeneratedFile) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generated_files
		 (id, file_name, source_name, target_forms, size_bytes, s3_bucket, s3_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.FileName, f.SourceName, f.TargetForms, f.SizeBytes, f.S3Bucket, f.S3Key, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("generatedFileRepo.Create: %w", err)
	}
	return nil
}

func (r *generatedFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedFile, error) {
	var f domain.GeneratedFile
	err := r.db.GetContext(ctx, &f, "SELECT * FROM generated_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGeneratedFileNotFound
		}
		return nil, fmt.Errorf("generatedFileRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *generatedFileRepo) List(ctx context.Context, offset, limit int) ([]domain.GeneratedFile, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM generated_files"); err != nil {
		return nil, 0, fmt.Errorf("generatedFileRepo.List count: %w", err)
	}

	var files []domain.GeneratedFile
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM generated_files ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("generatedFileRepo.List: %w", err)
	}
	return files, total, nil
}
