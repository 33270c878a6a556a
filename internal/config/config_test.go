package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsKeepRetriesOff(t *testing.T) {
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("DRAFT_STORE_DRIVER", "")
	t.Setenv("ARQUIVIA_API_VERSION", "")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("OUTPUT_FORMAT", "")

	cfg := Load()
	if cfg.RetryMaxAttempts != 1 {
		t.Fatalf("expected no automatic retry by default, got %d attempts", cfg.RetryMaxAttempts)
	}
	if cfg.PageSize != 21 {
		t.Fatalf("expected default page size 21, got %d", cfg.PageSize)
	}
	if cfg.DraftStoreDriver != "sqlite" {
		t.Fatalf("expected sqlite draft store, got %q", cfg.DraftStoreDriver)
	}
	if cfg.APIVersion != "v1" {
		t.Fatalf("expected api version v1, got %q", cfg.APIVersion)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected http client default timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.OutputFormat != "table" {
		t.Fatalf("expected table output, got %q", cfg.OutputFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("ARQUIVIA_API_URL", "https://arquivia.example.com")
	t.Setenv("ARQUIVIA_USER_ID", "12")
	t.Setenv("RETRY_MAX_ATTEMPTS", "3")
	t.Setenv("RETRY_INITIAL_BACKOFF_MS", "50")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.25")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
	t.Setenv("OUTPUT_FORMAT", "YAML")

	cfg := Load()
	if cfg.APIURL != "https://arquivia.example.com" || cfg.UserID != 12 {
		t.Fatalf("unexpected api settings %+v", cfg)
	}
	if cfg.RetryMaxAttempts != 3 || cfg.RetryInitialBackoff != 50*time.Millisecond {
		t.Fatalf("unexpected retry settings %d %s", cfg.RetryMaxAttempts, cfg.RetryInitialBackoff)
	}
	if cfg.BreakerEnabled || cfg.BreakerFailureRatio != 0.25 {
		t.Fatalf("unexpected breaker settings %v %v", cfg.BreakerEnabled, cfg.BreakerFailureRatio)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.OutputFormat != "yaml" {
		t.Fatalf("expected lower-cased output format, got %q", cfg.OutputFormat)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PAGE_SIZE", "many")
	t.Setenv("BREAKER_ENABLED", "perhaps")

	cfg := Load()
	if cfg.PageSize != 21 || !cfg.BreakerEnabled {
		t.Fatalf("expected fallbacks, got page size %d breaker %v", cfg.PageSize, cfg.BreakerEnabled)
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	base := Config{APIURL: "http://localhost:8000", DraftStoreDriver: "sqlite", OutputFormat: "table", PageSize: 21}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := base
	bad.APIURL = "localhost"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected relative url to be rejected")
	}
	bad = base
	bad.DraftStoreDriver = "mysql"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown driver to be rejected")
	}
	bad = base
	bad.OutputFormat = "csv"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown output format to be rejected")
	}
}
