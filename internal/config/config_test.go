package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SWEEP_ON_READ", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("SEARCH_DELAY", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Fatalf("expected default store driver sqlite, got %q", cfg.StoreDriver)
	}
	if !cfg.SweepOnRead {
		t.Fatalf("expected sweep on read enabled by default")
	}
	if cfg.SweepInterval != 60*time.Second {
		t.Fatalf("expected default sweep interval 60s, got %v", cfg.SweepInterval)
	}
	if cfg.SearchDelay != 60*time.Second {
		t.Fatalf("expected default search delay 60s, got %v", cfg.SearchDelay)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "jsonfile")
	t.Setenv("SWEEP_ON_READ", "false")
	t.Setenv("SWEEP_INTERVAL", "5s")
	t.Setenv("SEARCH_DELAY", "10ms")
	t.Setenv("API_RATE_LIMIT_RPS", "50")

	cfg := Load()
	if cfg.StoreDriver != "jsonfile" {
		t.Fatalf("expected store driver override, got %q", cfg.StoreDriver)
	}
	if cfg.SweepOnRead {
		t.Fatalf("expected sweep on read disabled")
	}
	if cfg.SweepInterval != 5*time.Second {
		t.Fatalf("expected sweep interval 5s, got %v", cfg.SweepInterval)
	}
	if cfg.SearchDelay != 10*time.Millisecond {
		t.Fatalf("expected search delay 10ms, got %v", cfg.SearchDelay)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected rate limit rps 50, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL", "not-a-duration")
	t.Setenv("API_RATE_LIMIT_BURST", "many")

	cfg := Load()
	if cfg.SweepInterval != 60*time.Second {
		t.Fatalf("expected fallback sweep interval 60s, got %v", cfg.SweepInterval)
	}
	if cfg.APIRateLimitBurst != 20 {
		t.Fatalf("expected fallback burst 20, got %d", cfg.APIRateLimitBurst)
	}
}
