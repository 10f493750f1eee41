// Package config loads and persists plata's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all plata configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// DefaultsConfig holds the default budget list filters.
type DefaultsConfig struct {
	Period     string `toml:"period"`
	ActiveOnly bool   `toml:"active_only"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	RefreshIntervalSec int `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://api.plata.app/v1",
		},
		Defaults: DefaultsConfig{
			Period:     "monthly",
			ActiveOnly: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "plata")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plata")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// BaseURL returns the API base URL from env var or config, in that order.
func BaseURL(cfg Config) string {
	if url := os.Getenv("PLATA_API_URL"); url != "" {
		return url
	}
	return cfg.API.BaseURL
}

// DefaultPeriod returns the configured default budget period, falling
// back to monthly.
func (c Config) DefaultPeriod() string {
	if c.Defaults.Period == "" {
		return "monthly"
	}
	return c.Defaults.Period
}
