package ocr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/ocr"
)

func TestRecognize_JoinsPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Document struct {
				Type        string `json:"type"`
				DocumentURL string `json:"document_url"`
			} `json:"document"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mistral-ocr-latest", body.Model)
		assert.Equal(t, "document_url", body.Document.Type)
		assert.True(t, strings.HasPrefix(body.Document.DocumentURL, "data:application/pdf;base64,"))

		_, _ = w.Write([]byte(`{"pages":[{"index":0,"markdown":"Nom: Dupont"},{"index":1,"markdown":"Ville: Paris"}]}`))
	}))
	defer srv.Close()

	gw := ocr.NewMistralOCR(config.OCRConfig{Endpoint: srv.URL, APIKey: "secret", MaxRetries: 1})
	text, err := gw.Recognize(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "Nom: Dupont\n\nVille: Paris", text)
}

func TestRecognize_NonOKIsOCRError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad document"}`))
	}))
	defer srv.Close()

	gw := ocr.NewMistralOCR(config.OCRConfig{Endpoint: srv.URL, MaxRetries: 3})
	_, err := gw.Recognize(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOCRService)
	assert.Contains(t, err.Error(), "400")
}

func TestRecognize_RetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"pages":[{"index":0,"markdown":"ok"}]}`))
	}))
	defer srv.Close()

	gw := ocr.NewMistralOCR(config.OCRConfig{Endpoint: srv.URL, MaxRetries: 2})
	text, err := gw.Recognize(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRecognize_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	gw := ocr.NewMistralOCR(config.OCRConfig{Endpoint: srv.URL, MaxRetries: 1})
	_, err := gw.Recognize(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, domain.ErrOCRService)
}
