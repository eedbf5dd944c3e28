package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREFLY_III_URL", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache.TTL = %v, expected 10m", cfg.Cache.TTL)
	}
	if cfg.LLM.Provider != ProviderGigaChat {
		t.Errorf("LLM.Provider = %q, expected %q", cfg.LLM.Provider, ProviderGigaChat)
	}
	if cfg.Firefly.TagsLimit != 500 {
		t.Errorf("Firefly.TagsLimit = %d, expected 500", cfg.Firefly.TagsLimit)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FIREFLY_III_URL", "https://firefly.example.com")
	t.Setenv("FIREFLY_III_API_KEY", "token")
	t.Setenv("FIREFLY_BUDGET_ID", "7")
	t.Setenv("RECORD_CONCURRENCY", "4")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("LLM_TEMPERATURE", "0.9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Firefly.URL != "https://firefly.example.com" {
		t.Errorf("Firefly.URL = %q", cfg.Firefly.URL)
	}
	if cfg.Firefly.APIKey != "token" {
		t.Errorf("Firefly.APIKey = %q", cfg.Firefly.APIKey)
	}
	if cfg.Firefly.BudgetID != 7 {
		t.Errorf("Firefly.BudgetID = %d, expected 7", cfg.Firefly.BudgetID)
	}
	if cfg.Recorder.Concurrency != 4 {
		t.Errorf("Recorder.Concurrency = %d, expected 4", cfg.Recorder.Concurrency)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled = false, expected true")
	}
	if cfg.LLM.Temperature != 0.9 {
		t.Errorf("LLM.Temperature = %v, expected 0.9", cfg.LLM.Temperature)
	}
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("FIREFLY_TAGS_LIMIT", "lots")
	if got := getEnvInt("FIREFLY_TAGS_LIMIT", 500); got != 500 {
		t.Errorf("getEnvInt() = %d, expected 500", got)
	}
}
