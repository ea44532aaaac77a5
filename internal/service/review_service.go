package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

// ReviewService defines read and delete operations on the review queue.
// Transfers and edits go through ReconciliationService.
type ReviewService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerReview, error)
	List(ctx context.Context, reviewType domain.ReviewType, offset, limit int) ([]domain.CustomerReview, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviews port.CustomerReviewRepository
	files   port.CustomerFileRepository
	storage port.ObjectStorage
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	reviews port.CustomerReviewRepository,
	files port.CustomerFileRepository,
	storage port.ObjectStorage,
) ReviewService {
	return &reviewService{reviews: reviews, files: files, storage: storage}
}

func (s *reviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerReview, error) {
	return s.reviews.GetByID(ctx, id)
}

// List filters by reviewType unless it is empty.
func (s *reviewService) List(ctx context.Context, reviewType domain.ReviewType, offset, limit int) ([]domain.CustomerReview, int, error) {
	if reviewType != "" && !domain.ValidReviewTypes[reviewType] {
		return nil, 0, domain.ErrInvalidReviewType
	}
	return s.reviews.List(ctx, reviewType, offset, limit)
}

// Delete discards a review record together with its attachments.
func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reviews.GetByID(ctx, id); err != nil {
		return err
	}
	files, err := s.files.ListByReview(ctx, id)
	if err != nil {
		return fmt.Errorf("reviewService.Delete: %w", err)
	}
	purgeObjects(ctx, s.storage, files)
	return s.reviews.Delete(ctx, id)
}
