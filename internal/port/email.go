package port

import (
	"context"

	"intakeflow/internal/domain"
)

// ReviewNotifier tells reviewers that new records are waiting in the review queue.
type ReviewNotifier interface {
	NotifyReviewQueue(ctx context.Context, digest domain.ReviewDigest) error
}
