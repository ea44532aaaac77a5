// Package geolocation resolves client IP addresses to a city and country
// through the ip-api.com JSON endpoint.
package geolocation

import (
	"context"
	"encoding/json"
	"io"
	"net"
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
)

const (
	defaultBaseURL = "http://ip-api.com/json"
	// The free ip-api tier allows 45 requests per minute.
	freeTierRate = 45.0 / 60.0
)

type ipAPILocator struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewIPAPILocator returns a Geolocator backed by ip-api.com.
func NewIPAPILocator(cfg config.GeolocationConfig) port.Geolocator {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ipAPILocator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(freeTierRate), 5),
	}
}

type ipAPIResponse struct {
	Status  string `json:"status"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Locate returns Local for private and loopback addresses and Unknown when
// the lookup fails for any reason.
func (l *ipAPILocator) Locate(ctx context.Context, ip string) domain.Location {
	if IsLocal(ip) {
		return domain.Location{City: domain.LocationLocal, Country: domain.LocationLocal}
	}
	loc, err := l.lookup(ctx, ip)
	if err != nil {
		zap.L().Warn("ipAPILocator.Locate: lookup failed", zap.String("ip", ip), zap.Error(err))
		return domain.Location{City: domain.LocationUnknown, Country: domain.LocationUnknown}
	}
	return loc
}

func (l *ipAPILocator) lookup(ctx context.Context, ip string) (domain.Location, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return domain.Location{}, eris.Wrap(err, "geolocation: rate limiter")
	}
	endpoint := l.baseURL + "/" + url.PathEscape(ip) + "?fields=status,city,country"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Location{}, eris.Wrap(err, "geolocation: create request")
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Location{}, eris.Wrap(err, "geolocation: call ip-api")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, eris.Errorf("geolocation: ip-api returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Location{}, eris.Wrap(err, "geolocation: read response")
	}
	var parsed ipAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.Location{}, eris.Wrap(err, "geolocation: decode response")
	}
	if parsed.Status != "success" {
		return domain.Location{}, eris.Errorf("geolocation: ip-api status %q", parsed.Status)
	}

	loc := domain.Location{City: parsed.City, Country: parsed.Country}
	if loc.City == "" {
		loc.City = domain.LocationUnknown
	}
	if loc.Country == "" {
		loc.Country = domain.LocationUnknown
	}
	return loc, nil
}

// IsLocal reports whether ip is loopback, private or link-local.
func IsLocal(ip string) bool {
	if ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
