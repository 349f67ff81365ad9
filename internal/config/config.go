// Package config loads DeloConnect configuration from
// ~/.deloconnect/config.json with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Env overrides. Environment always wins over the file so a token exported
// for one shell does not have to be persisted.
const (
	EnvAPIBaseURL  = "DELO_API_URL"
	EnvWSBaseURL   = "DELO_WS_URL"
	EnvAccessToken = "DELO_ACCESS_TOKEN"
	EnvTheme       = "DELO_THEME"
	EnvConfigDir   = "DELO_CONFIG_DIR"
)

// Defaults applied when neither the file nor the environment provides a
// value.
const (
	DefaultAPIBaseURL   = "https://api.deloconnect.local"
	DefaultWSBaseURL    = "wss://api.deloconnect.local"
	DefaultPollInterval = 30 * time.Second
	DefaultHTTPTimeout  = 10 * time.Second
)

// LoggingConfig is the logging section; consumed by internal/logging.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode,omitempty"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// Config is the single source of truth for console configuration.
type Config struct {
	// Backend endpoints
	APIBaseURL string `json:"api_base_url,omitempty"`
	WSBaseURL  string `json:"ws_base_url,omitempty"`

	// Bearer token for every REST call and the live feed handshake.
	// Refreshed on disk by `delo login`; the watcher picks it up live.
	AccessToken string `json:"access_token,omitempty"`

	// UI settings
	Theme string `json:"theme,omitempty"` // "light" or "dark"

	// Employee list refetch cadence, seconds. 0 means DefaultPollInterval.
	PollIntervalSecs int `json:"poll_interval_secs,omitempty"`

	// Per-request timeout, seconds. 0 means DefaultHTTPTimeout.
	HTTPTimeoutSecs int `json:"http_timeout_secs,omitempty"`

	Logging LoggingConfig `json:"logging,omitempty"`
}

// Dir returns the config directory, honoring DELO_CONFIG_DIR for tests and
// alternate profiles.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".deloconnect"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, applies env overrides and fills defaults.
// A missing file is not an error; overrides and defaults still apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvWSBaseURL); v != "" {
		c.WSBaseURL = v
	}
	if v := os.Getenv(EnvAccessToken); v != "" {
		c.AccessToken = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.WSBaseURL == "" {
		c.WSBaseURL = DefaultWSBaseURL
	}
}

// PollInterval returns the configured employee-list refetch cadence.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSecs > 0 {
		return time.Duration(c.PollIntervalSecs) * time.Second
	}
	return DefaultPollInterval
}

// HTTPTimeout returns the per-request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSecs > 0 {
		return time.Duration(c.HTTPTimeoutSecs) * time.Second
	}
	return DefaultHTTPTimeout
}

// Save writes the config back to its default location, creating the
// directory if needed. Env overrides are not persisted; Save writes the
// struct as-is.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
