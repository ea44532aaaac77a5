package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://api.mistral.ai/v1/ocr", cfg.OCR.Endpoint)
	assert.Equal(t, "mistral-ocr-latest", cfg.OCR.Model)
	assert.Equal(t, 4, cfg.OCR.Concurrency)
	assert.Equal(t, 10, cfg.Validation.EmailTimeoutSecs)
	assert.Equal(t, 5, cfg.Validation.PhoneTimeoutSecs)
	assert.Equal(t, "http://ip-api.com/json", cfg.Geolocation.BaseURL)
	assert.Equal(t, 100, cfg.Intake.MinUploadSize)
	assert.Empty(t, cfg.Email.ReviewerEmails)
	assert.False(t, cfg.Revalidation.Enabled)
	assert.Equal(t, time.Hour, cfg.Revalidation.PollInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INTAKE_OCR_CONCURRENCY", "8")
	t.Setenv("INTAKE_DB_NAME", "other_db")
	t.Setenv("INTAKE_EMAIL_REVIEWER_EMAILS", "a@example.com, b@example.com,")
	t.Setenv("INTAKE_VALIDATION_REQUESTS_PER_SECOND", "2.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.OCR.Concurrency)
	assert.Equal(t, "other_db", cfg.DB.Name)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.ReviewerEmails)
	assert.InDelta(t, 2.5, cfg.Validation.RequestsPerSecond, 0.0001)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", db.DSN())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, config.InitLogger(config.LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, config.InitLogger(config.LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, config.InitLogger(config.LogConfig{Level: "loud", Format: "json"}))
}
