package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/email"
	"intakeflow/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	from        string
	reviewers   []string
	frontendURL string
}

// NewSESNotifier creates a ReviewNotifier that mails the configured reviewers
// through Amazon SES.
func NewSESNotifier(cfg *config.EmailConfig) (port.ReviewNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, eris.Wrap(err, "loading AWS config for SES")
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(awsCfg),
		from:        fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		reviewers:   cfg.ReviewerEmails,
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (s *sesNotifier) NotifyReviewQueue(ctx context.Context, digest domain.ReviewDigest) error {
	if digest.Total == 0 || len(s.reviewers) == 0 {
		return nil
	}
	msg := email.RenderDigest(digest, s.frontendURL)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &types.Destination{
			ToAddresses: s.reviewers,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.HTML},
					Text: &types.Content{Data: &msg.Text},
				},
			},
		},
	})
	if err != nil {
		return eris.Wrap(err, "SES SendEmail")
	}
	zap.L().Info("sesNotifier.NotifyReviewQueue: sent",
		zap.String("source", digest.SourceFile), zap.Int("total", digest.Total),
		zap.Int("recipients", len(s.reviewers)))
	return nil
}
