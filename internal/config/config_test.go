package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SLOT_START_HOUR", "")
	t.Setenv("SLOT_END_HOUR", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:3000" {
		t.Fatalf("expected default base url, got %s", cfg.APIBaseURL)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SlotStartHour != 8 || cfg.SlotEndHour != 17 || cfg.SlotIntervalMins != 15 {
		t.Fatalf("expected default booking window 8-17/15, got %d-%d/%d",
			cfg.SlotStartHour, cfg.SlotEndHour, cfg.SlotIntervalMins)
	}
	if cfg.SearchDebounce != 500*time.Millisecond {
		t.Fatalf("expected default search debounce, got %s", cfg.SearchDebounce)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Fatalf("expected default http timeout, got %s", cfg.HTTPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.clinica.example/")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SLOT_END_HOUR", "18")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")
	t.Setenv("METRICS_ENABLED", "false")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.clinica.example" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level override, got %s", cfg.LogLevel)
	}
	if cfg.SlotEndHour != 18 {
		t.Fatalf("expected slot end hour override, got %d", cfg.SlotEndHour)
	}
	if cfg.SearchDebounce != 250*time.Millisecond {
		t.Fatalf("expected debounce override, got %s", cfg.SearchDebounce)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
}

func TestLoadRequiresBaseURLOutsideDevelopment(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("expected missing API_BASE_URL to fail in production")
	}

	t.Setenv("API_BASE_URL", "https://api.clinica.example")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.clinica.example" {
		t.Fatalf("unexpected base url %s", cfg.APIBaseURL)
	}
}
