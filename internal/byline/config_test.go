package byline

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://news.yahoo.co.jp" {
		t.Errorf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		t.Error("timeout must be bounded")
	}
	if cfg.UserAgent == "" {
		t.Error("user agent must not be blank")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BYLINE_BASE_URL", "http://localhost:9999")
	t.Setenv("BYLINE_TIMEOUT_SECONDS", "3")
	t.Setenv("BYLINE_USER_AGENT", "test-agent/1.0")

	cfg := ConfigFromEnv()

	if cfg.BaseURL != "http://localhost:9999" {
		t.Errorf("base URL not overridden: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("timeout not overridden: %v", cfg.Timeout)
	}
	if cfg.UserAgent != "test-agent/1.0" {
		t.Errorf("user agent not overridden: %q", cfg.UserAgent)
	}
}

func TestConfigFromEnv_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("BYLINE_TIMEOUT_SECONDS", "not-a-number")

	cfg := ConfigFromEnv()
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("invalid timeout should keep default, got %v", cfg.Timeout)
	}
}
