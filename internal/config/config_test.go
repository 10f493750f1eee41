package config

import "testing"

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.plata.app/v1" {
		t.Fatalf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.Defaults.Period != "monthly" || !cfg.Defaults.ActiveOnly {
		t.Fatalf("Defaults = %+v, want monthly/active-only", cfg.Defaults)
	}
	if Exists() {
		t.Fatal("Exists() = true with no file on disk")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://localhost:8000/api"
	cfg.Defaults.Period = "weekly"
	cfg.Appearance.Theme = "terminal"
	cfg.TUI.RefreshIntervalSec = 30

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestBaseURLEnvOverride(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("PLATA_API_URL", "")
	if got := BaseURL(cfg); got != cfg.API.BaseURL {
		t.Fatalf("BaseURL = %q, want config value", got)
	}

	t.Setenv("PLATA_API_URL", "http://localhost:9000")
	if got := BaseURL(cfg); got != "http://localhost:9000" {
		t.Fatalf("BaseURL = %q, want env override", got)
	}
}

func TestDefaultPeriodFallback(t *testing.T) {
	var cfg Config
	if got := cfg.DefaultPeriod(); got != "monthly" {
		t.Fatalf("DefaultPeriod = %q, want monthly", got)
	}
	cfg.Defaults.Period = "yearly"
	if got := cfg.DefaultPeriod(); got != "yearly" {
		t.Fatalf("DefaultPeriod = %q, want yearly", got)
	}
}
