// Package config provides configuration management for omnibar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runger/omnibar/internal/query/rank"
	"github.com/runger/omnibar/internal/query/sources"
)

// Config is the omnibar configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Search   SearchConfig   `yaml:"search"`
	Browser  BrowserConfig  `yaml:"browser"`
	Database DatabaseConfig `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SearchConfig holds query-engine settings: per-source caps, lookback
// windows, ranking weights, and the adapter memo cache.
type SearchConfig struct {
	Limits     sources.Limits `yaml:"limits"`
	Weights    rank.Weights   `yaml:"weights"`
	CacheTTLMs int            `yaml:"cache_ttl_ms"` // 0 disables adapter memoization
}

// BrowserConfig holds the outward-facing browser integration settings.
type BrowserConfig struct {
	// Command launches a URL, e.g. "firefox --new-tab". Empty picks the
	// platform opener (xdg-open / open).
	Command string `yaml:"command"`

	// SearchURL is the web-search template; %s is replaced with the
	// escaped query.
	SearchURL string `yaml:"search_url"`

	// NewTabURL / NewWindowURL are what the new-tab and new-window
	// actions open.
	NewTabURL    string `yaml:"new_tab_url"`
	NewWindowURL string `yaml:"new_window_url"`
}

// DatabaseConfig holds the profile snapshot database settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty = <data dir>/snapshot.db
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "warn"},
		Search: SearchConfig{
			Limits:     sources.DefaultLimits(),
			Weights:    rank.DefaultWeights(),
			CacheTTLMs: 5000,
		},
		Browser: BrowserConfig{
			SearchURL:    "https://duckduckgo.com/?q=%s",
			NewTabURL:    "about:blank",
			NewWindowURL: "about:blank",
		},
		Database: DatabaseConfig{},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from path. A missing file returns the
// defaults; a present but malformed one is an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to path, creating directories as
// needed.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks field ranges. Zero-valued weights and limits are
// allowed; they fall back to defaults at wiring time.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Search.CacheTTLMs < 0 {
		return fmt.Errorf("search.cache_ttl_ms must not be negative")
	}
	for name, w := range map[string]float64{
		"title_exact":    c.Search.Weights.TitleExact,
		"title_prefix":   c.Search.Weights.TitlePrefix,
		"title_contains": c.Search.Weights.TitleContains,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("search.weights.%s must be in [0,1]", name)
		}
	}
	return nil
}

// CacheTTL returns the adapter memo TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLMs) * time.Millisecond
}

// DatabasePath returns the configured snapshot path, or the default under
// the data directory.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(DefaultPaths().DataDir, "snapshot.db")
}

// applyEnvOverrides applies OMNIBAR_* environment overrides after file
// loading.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OMNIBAR_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("OMNIBAR_SEARCH_URL"); v != "" {
		c.Browser.SearchURL = v
	}
	if v := os.Getenv("OMNIBAR_BROWSER"); v != "" {
		c.Browser.Command = v
	}
	if os.Getenv("OMNIBAR_DEBUG") == "1" {
		c.Log.Level = "debug"
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
