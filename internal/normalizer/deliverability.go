package normalizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"intakeflow/internal/config"
	"intakeflow/internal/port"
	"intakeflow/internal/resilience"
)

const defaultEmailReputationURL = "https://emailreputation.abstractapi.com/v1"

type deliverabilityClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewDeliverabilityClient returns a DeliverabilityChecker backed by the
// AbstractAPI email reputation service.
func NewDeliverabilityClient(cfg config.ValidationConfig) port.DeliverabilityChecker {
	baseURL := cfg.EmailReputationURL
	if baseURL == "" {
		baseURL = defaultEmailReputationURL
	}
	timeout := time.Duration(cfg.EmailTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	retry.OnRetry = resilience.RetryLogger("abstractapi", "email_reputation")

	return &deliverabilityClient{
		baseURL: baseURL,
		apiKey:  cfg.EmailReputationAPIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: newLimiter(cfg.RequestsPerSecond),
		retry:   retry,
	}
}

type reputationResponse struct {
	EmailDeliverability struct {
		Status string `json:"status"`
	} `json:"email_deliverability"`
}

// IsDeliverable is true only when the service reports a "deliverable" status.
func (d *deliverabilityClient) IsDeliverable(ctx context.Context, email string) bool {
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	status, err := resilience.DoVal(ctx, d.retry, func(ctx context.Context) (string, error) {
		return d.fetchStatus(ctx, email)
	})
	if err != nil {
		zap.L().Warn("deliverabilityClient.IsDeliverable: lookup failed", zap.String("email", email), zap.Error(err))
		return false
	}
	return strings.EqualFold(status, "deliverable")
}

func (d *deliverabilityClient) fetchStatus(ctx context.Context, email string) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "email reputation: rate limiter")
	}
	q := url.Values{"api_key": {d.apiKey}, "email": {email}}
	body, err := getJSON(ctx, d.client, d.baseURL+"?"+q.Encode())
	if err != nil {
		return "", err
	}
	var parsed reputationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", eris.Wrap(err, "email reputation: decode response")
	}
	return parsed.EmailDeliverability.Status, nil
}

// getJSON performs a GET and returns the body of a 2xx response. Transient
// statuses come back as resilience.TransientError.
func getJSON(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "call remote")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := eris.Errorf("remote returned %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return nil, statusErr
	}
	return body, nil
}

// newLimiter returns a limiter allowing rps requests per second, or an
// unlimited one when rps is not positive.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
