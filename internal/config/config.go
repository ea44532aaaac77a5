package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	DB           DBConfig
	S3           S3Config
	Log          LogConfig
	OCR          OCRConfig
	Validation   ValidationConfig
	Geolocation  GeolocationConfig
	CORS         CORSConfig
	Intake       IntakeConfig
	Email        EmailConfig
	Revalidation RevalidationConfig
}

// RevalidationConfig controls the background re-run of external checks.
type RevalidationConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	Concurrency  int           `mapstructure:"concurrency"`
}

// EmailConfig holds reviewer notification settings.
type EmailConfig struct {
	Provider       string   `mapstructure:"provider"`
	Region         string   `mapstructure:"region"`
	FromAddress    string   `mapstructure:"from_address"`
	FromName       string   `mapstructure:"from_name"`
	ReviewerEmails []string `mapstructure:"reviewer_emails"`
	FrontendURL    string   `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IntakeConfig bounds uploaded documents.
type IntakeConfig struct {
	MaxPages      int   `mapstructure:"max_pages"`
	MaxUploadMB   int64 `mapstructure:"max_upload_mb"`
	MinUploadSize int   `mapstructure:"min_upload_size"`
}

// OCRConfig holds OCR backend settings.
type OCRConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxRetries  int    `mapstructure:"max_retries"`
	Concurrency int    `mapstructure:"concurrency"`
}

// ValidationConfig holds settings for the external email and phone checks.
type ValidationConfig struct {
	EmailReputationURL    string  `mapstructure:"email_reputation_url"`
	EmailReputationAPIKey string  `mapstructure:"email_reputation_api_key"`
	EmailTimeoutSecs      int     `mapstructure:"email_timeout_secs"`
	PhoneIntelligenceURL  string  `mapstructure:"phone_intelligence_url"`
	PhoneIntelligenceKey  string  `mapstructure:"phone_intelligence_api_key"`
	PhoneTimeoutSecs      int     `mapstructure:"phone_timeout_secs"`
	DNSTimeoutSecs        int     `mapstructure:"dns_timeout_secs"`
	RequestsPerSecond     float64 `mapstructure:"requests_per_second"`
	MaxAttempts           int     `mapstructure:"max_attempts"`
}

// GeolocationConfig holds IP geolocation settings.
type GeolocationConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the INTAKE_
// prefix. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "intake")
	v.SetDefault("db.password", "intake_secret")
	v.SetDefault("db.name", "intake_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-3")
	v.SetDefault("s3.bucket", "intake-files")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.endpoint", "https://api.mistral.ai/v1/ocr")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.model", "mistral-ocr-latest")
	v.SetDefault("ocr.timeout_secs", 120)
	v.SetDefault("ocr.max_retries", 3)
	v.SetDefault("ocr.concurrency", 4)

	// Validation defaults
	v.SetDefault("validation.email_reputation_url", "https://emailreputation.abstractapi.com/v1")
	v.SetDefault("validation.email_reputation_api_key", "")
	v.SetDefault("validation.email_timeout_secs", 10)
	v.SetDefault("validation.phone_intelligence_url", "https://phoneintelligence.abstractapi.com/v1/")
	v.SetDefault("validation.phone_intelligence_api_key", "")
	v.SetDefault("validation.phone_timeout_secs", 5)
	v.SetDefault("validation.dns_timeout_secs", 5)
	v.SetDefault("validation.requests_per_second", 1.0)
	v.SetDefault("validation.max_attempts", 2)

	// Geolocation defaults
	v.SetDefault("geolocation.base_url", "http://ip-api.com/json")
	v.SetDefault("geolocation.timeout_secs", 5)

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Intake defaults
	v.SetDefault("intake.max_pages", 0)
	v.SetDefault("intake.max_upload_mb", 50)
	v.SetDefault("intake.min_upload_size", 100)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.from_address", "noreply@intake.local")
	v.SetDefault("email.from_name", "Intake")
	v.SetDefault("email.reviewer_emails", "")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Revalidation defaults
	v.SetDefault("revalidation.enabled", false)
	v.SetDefault("revalidation.poll_interval", "1h")
	v.SetDefault("revalidation.batch_size", 50)
	v.SetDefault("revalidation.concurrency", 2)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                           "INTAKE_SERVER_PORT",
		"server.read_timeout":                   "INTAKE_SERVER_READ_TIMEOUT",
		"server.write_timeout":                  "INTAKE_SERVER_WRITE_TIMEOUT",
		"server.environment":                    "INTAKE_SERVER_ENVIRONMENT",
		"db.host":                               "INTAKE_DB_HOST",
		"db.port":                               "INTAKE_DB_PORT",
		"db.user":                               "INTAKE_DB_USER",
		"db.password":                           "INTAKE_DB_PASSWORD",
		"db.name":                               "INTAKE_DB_NAME",
		"db.sslmode":                            "INTAKE_DB_SSLMODE",
		"db.max_open":                           "INTAKE_DB_MAX_OPEN",
		"db.max_idle":                           "INTAKE_DB_MAX_IDLE",
		"s3.region":                             "INTAKE_S3_REGION",
		"s3.bucket":                             "INTAKE_S3_BUCKET",
		"s3.endpoint":                           "INTAKE_S3_ENDPOINT",
		"s3.access_key":                         "INTAKE_S3_ACCESS_KEY",
		"s3.secret_key":                         "INTAKE_S3_SECRET_KEY",
		"s3.max_file_size_mb":                   "INTAKE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                     "INTAKE_S3_PRESIGN_EXPIRY",
		"log.level":                             "INTAKE_LOG_LEVEL",
		"log.format":                            "INTAKE_LOG_FORMAT",
		"ocr.endpoint":                          "INTAKE_OCR_ENDPOINT",
		"ocr.api_key":                           "INTAKE_OCR_API_KEY",
		"ocr.model":                             "INTAKE_OCR_MODEL",
		"ocr.timeout_secs":                      "INTAKE_OCR_TIMEOUT_SECS",
		"ocr.max_retries":                       "INTAKE_OCR_MAX_RETRIES",
		"ocr.concurrency":                       "INTAKE_OCR_CONCURRENCY",
		"validation.email_reputation_url":       "INTAKE_VALIDATION_EMAIL_REPUTATION_URL",
		"validation.email_reputation_api_key":   "INTAKE_VALIDATION_EMAIL_REPUTATION_API_KEY",
		"validation.email_timeout_secs":         "INTAKE_VALIDATION_EMAIL_TIMEOUT_SECS",
		"validation.phone_intelligence_url":     "INTAKE_VALIDATION_PHONE_INTELLIGENCE_URL",
		"validation.phone_intelligence_api_key": "INTAKE_VALIDATION_PHONE_INTELLIGENCE_API_KEY",
		"validation.phone_timeout_secs":         "INTAKE_VALIDATION_PHONE_TIMEOUT_SECS",
		"validation.dns_timeout_secs":           "INTAKE_VALIDATION_DNS_TIMEOUT_SECS",
		"validation.requests_per_second":        "INTAKE_VALIDATION_REQUESTS_PER_SECOND",
		"validation.max_attempts":               "INTAKE_VALIDATION_MAX_ATTEMPTS",
		"geolocation.base_url":                  "INTAKE_GEOLOCATION_BASE_URL",
		"geolocation.timeout_secs":              "INTAKE_GEOLOCATION_TIMEOUT_SECS",
		"cors.allowed_origins":                  "INTAKE_CORS_ALLOWED_ORIGINS",
		"intake.max_pages":                      "INTAKE_INTAKE_MAX_PAGES",
		"intake.max_upload_mb":                  "INTAKE_INTAKE_MAX_UPLOAD_MB",
		"intake.min_upload_size":                "INTAKE_INTAKE_MIN_UPLOAD_SIZE",
		"email.provider":                        "INTAKE_EMAIL_PROVIDER",
		"email.region":                          "INTAKE_EMAIL_REGION",
		"email.from_address":                    "INTAKE_EMAIL_FROM_ADDRESS",
		"email.from_name":                       "INTAKE_EMAIL_FROM_NAME",
		"email.reviewer_emails":                 "INTAKE_EMAIL_REVIEWER_EMAILS",
		"email.frontend_url":                    "INTAKE_EMAIL_FRONTEND_URL",
		"revalidation.enabled":                  "INTAKE_REVALIDATION_ENABLED",
		"revalidation.poll_interval":            "INTAKE_REVALIDATION_POLL_INTERVAL",
		"revalidation.batch_size":               "INTAKE_REVALIDATION_BATCH_SIZE",
		"revalidation.concurrency":              "INTAKE_REVALIDATION_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT; use it unless INTAKE_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INTAKE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Endpoint:    v.GetString("ocr.endpoint"),
		APIKey:      v.GetString("ocr.api_key"),
		Model:       v.GetString("ocr.model"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
		MaxRetries:  v.GetInt("ocr.max_retries"),
		Concurrency: v.GetInt("ocr.concurrency"),
	}
	cfg.Validation = ValidationConfig{
		EmailReputationURL:    v.GetString("validation.email_reputation_url"),
		EmailReputationAPIKey: v.GetString("validation.email_reputation_api_key"),
		EmailTimeoutSecs:      v.GetInt("validation.email_timeout_secs"),
		PhoneIntelligenceURL:  v.GetString("validation.phone_intelligence_url"),
		PhoneIntelligenceKey:  v.GetString("validation.phone_intelligence_api_key"),
		PhoneTimeoutSecs:      v.GetInt("validation.phone_timeout_secs"),
		DNSTimeoutSecs:        v.GetInt("validation.dns_timeout_secs"),
		RequestsPerSecond:     v.GetFloat64("validation.requests_per_second"),
		MaxAttempts:           v.GetInt("validation.max_attempts"),
	}
	cfg.Geolocation = GeolocationConfig{
		BaseURL:     v.GetString("geolocation.base_url"),
		TimeoutSecs: v.GetInt("geolocation.timeout_secs"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Intake = IntakeConfig{
		MaxPages:      v.GetInt("intake.max_pages"),
		MaxUploadMB:   v.GetInt64("intake.max_upload_mb"),
		MinUploadSize: v.GetInt("intake.min_upload_size"),
	}
	cfg.Email = EmailConfig{
		Provider:       v.GetString("email.provider"),
		Region:         v.GetString("email.region"),
		FromAddress:    v.GetString("email.from_address"),
		FromName:       v.GetString("email.from_name"),
		ReviewerEmails: splitList(v.GetString("email.reviewer_emails")),
		FrontendURL:    v.GetString("email.frontend_url"),
	}

	cfg.Revalidation = RevalidationConfig{
		Enabled:      v.GetBool("revalidation.enabled"),
		PollInterval: v.GetDuration("revalidation.poll_interval"),
		BatchSize:    v.GetInt("revalidation.batch_size"),
		Concurrency:  v.GetInt("revalidation.concurrency"),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
