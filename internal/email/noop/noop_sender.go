package noop

import (
	"context"

	"go.uber.org/zap"

	"intakeflow/internal/domain"
	"intakeflow/internal/email"
	"intakeflow/internal/port"
)

type noopNotifier struct {
	frontendURL string
}

// NewNoopNotifier creates a ReviewNotifier that only logs the digest.
func NewNoopNotifier(frontendURL string) port.ReviewNotifier {
	return &noopNotifier{frontendURL: frontendURL}
}

func (n *noopNotifier) NotifyReviewQueue(_ context.Context, digest domain.ReviewDigest) error {
	if digest.Total == 0 {
		return nil
	}
	msg := email.RenderDigest(digest, n.frontendURL)
	zap.L().Info("[NOOP EMAIL] review digest",
		zap.String("subject", msg.Subject), zap.String("body", msg.Text))
	return nil
}
