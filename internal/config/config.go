package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL     string
	APIVersion string
	APIToken   string

	UserID   int
	UserName string

	HTTPTimeout       time.Duration
	APIRateLimitRPS   float64
	APIRateLimitBurst int

	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration

	BreakerEnabled      bool
	BreakerMinRequests  int
	BreakerFailureRatio float64
	BreakerOpenTimeout  time.Duration

	PageSize int

	DraftStoreDriver string
	DraftStoreDSN    string

	NATSURL     string
	NATSSubject string

	PushgatewayURL string
	MetricsJob     string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	OutputFormat string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		APIURL:     mustEnv("ARQUIVIA_API_URL", "http://localhost:8000"),
		APIVersion: mustEnv("ARQUIVIA_API_VERSION", "v1"),
		APIToken:   mustEnv("ARQUIVIA_TOKEN", ""),

		UserID:   mustEnvInt("ARQUIVIA_USER_ID", 0),
		UserName: mustEnv("ARQUIVIA_USER_NAME", ""),

		HTTPTimeout:       mustEnvDuration("HTTP_TIMEOUT_SECONDS", 0, time.Second),
		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 5),

		RetryMaxAttempts:    mustEnvInt("RETRY_MAX_ATTEMPTS", 1),
		RetryInitialBackoff: mustEnvDuration("RETRY_INITIAL_BACKOFF_MS", 200, time.Millisecond),
		RetryMaxBackoff:     mustEnvDuration("RETRY_MAX_BACKOFF_MS", 2000, time.Millisecond),

		BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:  mustEnvInt("BREAKER_MIN_REQUESTS", 5),
		BreakerFailureRatio: mustEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
		BreakerOpenTimeout:  mustEnvDuration("BREAKER_OPEN_TIMEOUT_SECONDS", 20, time.Second),

		PageSize: mustEnvInt("PAGE_SIZE", 21),

		DraftStoreDriver: mustEnv("DRAFT_STORE_DRIVER", "sqlite"),
		DraftStoreDSN:    mustEnv("DRAFT_STORE_DSN", "./data/drafts.db"),

		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "arquivia.classification.saved"),

		PushgatewayURL: mustEnv("PUSHGATEWAY_URL", ""),
		MetricsJob:     mustEnv("METRICS_JOB", "arquivia-cli"),

		LogLevel:      mustEnv("LOG_LEVEL", "warn"),
		LogFile:       mustEnv("LOG_FILE", ""),
		LogMaxSizeMB:  mustEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: mustEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: mustEnvInt("LOG_MAX_AGE_DAYS", 7),

		OutputFormat: strings.ToLower(mustEnv("OUTPUT_FORMAT", "table")),
	}
}

// Validate reports settings the toolkit cannot start with.
func (c Config) Validate() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("ARQUIVIA_API_URL must be an absolute url, got %q", c.APIURL)
	}
	switch c.DraftStoreDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("DRAFT_STORE_DRIVER must be sqlite or pgx, got %q", c.DraftStoreDriver)
	}
	switch c.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("OUTPUT_FORMAT must be table, json or yaml, got %q", c.OutputFormat)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback int, unit time.Duration) time.Duration {
	return time.Duration(mustEnvInt(key, fallback)) * unit
}
