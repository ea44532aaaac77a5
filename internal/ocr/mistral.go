// Package ocr implements the OCR gateway on top of the Mistral OCR API.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/port"
	"intakeflow/internal/resilience"
)

const (
	defaultEndpoint = "https://api.mistral.ai/v1/ocr"
	defaultModel    = "mistral-ocr-latest"
)

type mistralOCR struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	retry    resilience.RetryConfig
}

// NewMistralOCR creates an OCRGateway backed by the Mistral OCR API.
func NewMistralOCR(cfg config.OCRConfig) port.OCRGateway {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxRetries
	retry.InitialBackoff = time.Second
	retry.MaxBackoff = 20 * time.Second
	retry.OnRetry = resilience.RetryLogger("mistral", "ocr")

	return &mistralOCR{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		retry:    retry,
	}
}

type ocrRequest struct {
	Model    string      `json:"model"`
	Document ocrDocument `json:"document"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// Recognize sends one single-page PDF and returns the recognized text.
// Every returned error wraps domain.ErrOCRService.
func (m *mistralOCR) Recognize(ctx context.Context, page []byte) (string, error) {
	body, err := json.Marshal(ocrRequest{
		Model: m.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(page),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRService, eris.Wrap(err, "ocr: marshal request"))
	}

	text, err := resilience.DoVal(ctx, m.retry, func(ctx context.Context) (string, error) {
		return m.call(ctx, body)
	})
	if err != nil {
		zap.L().Warn("mistralOCR.Recognize: giving up", zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrOCRService, err)
	}
	return text, nil
}

func (m *mistralOCR) call(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "ocr: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ocr: call mistral")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "ocr: read response")
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := eris.Errorf("ocr: mistral returned %d: %s", resp.StatusCode, truncate(string(respBody), 300))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(apiErr, resp.StatusCode)
		}
		return "", apiErr
	}

	var parsed ocrResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", eris.Wrap(err, "ocr: decode response")
	}

	parts := make([]string, 0, len(parsed.Pages))
	for _, p := range parsed.Pages {
		parts = append(parts, p.Markdown)
	}
	return strings.Join(parts, "\n\n"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
