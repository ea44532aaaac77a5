package normalizer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/config"
	"intakeflow/internal/normalizer"
)

func TestDeliverability_Deliverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "a@b.fr", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"email_deliverability":{"status":"DELIVERABLE"}}`))
	}))
	defer srv.Close()

	c := normalizer.NewDeliverabilityClient(config.ValidationConfig{EmailReputationURL: srv.URL, EmailReputationAPIKey: "key", MaxAttempts: 1})
	assert.True(t, c.IsDeliverable(context.Background(), "a@b.fr"))
}

func TestDeliverability_FailuresAreFalse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"undeliverable", http.StatusOK, `{"email_deliverability":{"status":"undeliverable"}}`},
		{"server error", http.StatusInternalServerError, ``},
		{"unauthorized", http.StatusUnauthorized, `{}`},
		{"garbage", http.StatusOK, `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := normalizer.NewDeliverabilityClient(config.ValidationConfig{EmailReputationURL: srv.URL, MaxAttempts: 1})
			assert.False(t, c.IsDeliverable(context.Background(), "a@b.fr"))
		})
	}
}

func TestDeliverability_SkipsMalformedInput(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := normalizer.NewDeliverabilityClient(config.ValidationConfig{EmailReputationURL: srv.URL})
	assert.False(t, c.IsDeliverable(context.Background(), ""))
	assert.False(t, c.IsDeliverable(context.Background(), "no-at-sign"))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDeliverability_RetriesTransient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"email_deliverability":{"status":"deliverable"}}`))
	}))
	defer srv.Close()

	c := normalizer.NewDeliverabilityClient(config.ValidationConfig{EmailReputationURL: srv.URL, MaxAttempts: 2})
	assert.True(t, c.IsDeliverable(context.Background(), "a@b.fr"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPhoneIntelligence_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "33612345678", r.URL.Query().Get("phone"))
		_, _ = w.Write([]byte(`{"valid":true,"country":{"code":"FR","name":"France"},"type":"mobile","carrier":"Orange"}`))
	}))
	defer srv.Close()

	c := normalizer.NewPhoneIntelligenceClient(config.ValidationConfig{PhoneIntelligenceURL: srv.URL, MaxAttempts: 1})
	got := c.Verify(context.Background(), "+33 6 12 34 56 78")
	require.NotNil(t, got.Valid)
	assert.True(t, *got.Valid)
	assert.Equal(t, "France", got.Country)
	assert.Equal(t, "mobile", got.LineType)
	assert.Equal(t, "Orange", got.Carrier)
}

func TestPhoneIntelligence_InvalidNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"valid":false}`))
	}))
	defer srv.Close()

	c := normalizer.NewPhoneIntelligenceClient(config.ValidationConfig{PhoneIntelligenceURL: srv.URL, MaxAttempts: 1})
	got := c.Verify(context.Background(), "0000")
	require.NotNil(t, got.Valid)
	assert.False(t, *got.Valid)
}

func TestPhoneIntelligence_UnknownOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := normalizer.NewPhoneIntelligenceClient(config.ValidationConfig{PhoneIntelligenceURL: srv.URL, MaxAttempts: 1})
	assert.Nil(t, c.Verify(context.Background(), "0612345678").Valid)
	assert.Nil(t, c.Verify(context.Background(), "").Valid)
	assert.Nil(t, c.Verify(context.Background(), "+ ( )").Valid)
}
