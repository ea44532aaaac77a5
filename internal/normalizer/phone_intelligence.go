package normalizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/port"
	"intakeflow/internal/resilience"
)

const defaultPhoneIntelligenceURL = "https://phoneintelligence.abstractapi.com/v1/"

type phoneIntelligenceClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewPhoneIntelligenceClient returns a PhoneIntelligence backed by the
// AbstractAPI phone intelligence service.
func NewPhoneIntelligenceClient(cfg config.ValidationConfig) port.PhoneIntelligence {
	baseURL := cfg.PhoneIntelligenceURL
	if baseURL == "" {
		baseURL = defaultPhoneIntelligenceURL
	}
	timeout := time.Duration(cfg.PhoneTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	retry.OnRetry = resilience.RetryLogger("abstractapi", "phone_intelligence")

	return &phoneIntelligenceClient{
		baseURL: baseURL,
		apiKey:  cfg.PhoneIntelligenceKey,
		client:  &http.Client{Timeout: timeout},
		limiter: newLimiter(cfg.RequestsPerSecond),
		retry:   retry,
	}
}

type phoneIntelResponse struct {
	Valid   *bool `json:"valid"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
	Type    string `json:"type"`
	Carrier string `json:"carrier"`
}

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")

// Verify returns the carrier data for phone. Valid stays nil on empty input
// and on any failure.
func (p *phoneIntelligenceClient) Verify(ctx context.Context, phone string) domain.PhoneIntel {
	cleaned := phoneStripper.Replace(phone)
	if cleaned == "" {
		return domain.PhoneIntel{}
	}

	resp, err := resilience.DoVal(ctx, p.retry, func(ctx context.Context) (*phoneIntelResponse, error) {
		return p.lookup(ctx, cleaned)
	})
	if err != nil {
		zap.L().Warn("phoneIntelligenceClient.Verify: lookup failed", zap.String("phone", phone), zap.Error(err))
		return domain.PhoneIntel{}
	}

	valid := resp.Valid != nil && *resp.Valid
	return domain.PhoneIntel{
		Valid:    &valid,
		Country:  resp.Country.Name,
		LineType: resp.Type,
		Carrier:  resp.Carrier,
	}
}

func (p *phoneIntelligenceClient) lookup(ctx context.Context, phone string) (*phoneIntelResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "phone intelligence: rate limiter")
	}
	q := url.Values{"api_key": {p.apiKey}, "phone": {phone}}
	body, err := getJSON(ctx, p.client, p.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var parsed phoneIntelResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "phone intelligence: decode response")
	}
	return &parsed, nil
}
