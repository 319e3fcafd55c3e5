// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for pwck8s.
//
// Configuration file location:
//   - ~/.pwck8s/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/william86370/pwck8s/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete pwck8s configuration.
type Config struct {
	// Server is the Play With CK8S backend.
	Server ServerConfig `toml:"server" json:"server"`

	// Identity is the claim presented to the backend.
	Identity IdentityConfig `toml:"identity" json:"identity"`

	// Timing holds the fixed UX delays of the session widget.
	Timing TimingConfig `toml:"timing" json:"timing"`

	// Logging configures the rotated log file.
	Logging LoggingConfig `toml:"logging" json:"logging"`

	// UI configures the terminal interface.
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains backend connection settings.
type ServerConfig struct {
	// URL is the base URL of the backend API (no trailing /api/v1)
	URL string `toml:"url" json:"url"`
	// DashboardURL is the Rancher dashboard opened once a session exists
	DashboardURL string `toml:"dashboard_url" json:"dashboard_url"`
	// RequestTimeout bounds a single REST call
	RequestTimeout Duration `toml:"request_timeout" json:"request_timeout"`
	// RateLimit is the maximum requests per second (0 = unlimited)
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// RateBurst is the token bucket size
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
}

// IdentityConfig contains the identity claim.
type IdentityConfig struct {
	// UserDN is sent verbatim in the UserDN header. It is opaque to pwck8s.
	UserDN string `toml:"user_dn" json:"user_dn"`
}

// TimingConfig contains the widget delays.
//
// GracePeriod and PopupDuration are UX placeholders. They do not track
// backend readiness.
type TimingConfig struct {
	// GracePeriod is the wait between a successful login/logout response
	// and the display state change
	GracePeriod Duration `toml:"grace_period" json:"grace_period"`
	// PopupDuration is how long the Provisioning/Deleting popups stay up
	PopupDuration Duration `toml:"popup_duration" json:"popup_duration"`
	// TickInterval is the countdown refresh granularity
	TickInterval Duration `toml:"tick_interval" json:"tick_interval"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// File is the log file path (empty = ~/.pwck8s/pwck8s.log)
	File string `toml:"file" json:"file"`
	// MaxSizeMB rotates the file after this many megabytes
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb"`
	// MaxBackups is how many rotated files to keep (0 = all)
	MaxBackups int `toml:"max_backups" json:"max_backups"`
	// JSON switches to the JSON formatter
	JSON bool `toml:"json" json:"json"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
	// ShowHelp renders the key help line under the widget
	ShowHelp bool `toml:"show_help" json:"show_help"`
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration that reads and writes as "5s" in TOML.
type Duration struct {
	time.Duration
}

// D wraps a time.Duration.
func D(d time.Duration) Duration {
	return Duration{Duration: d}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default values.
const (
	DefaultServerURL      = "http://localhost:8080"
	DefaultDashboardURL   = "https://localhost/dashboard/home"
	DefaultGracePeriod    = 5 * time.Second
	DefaultPopupDuration  = 5 * time.Second
	DefaultTickInterval   = time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultRateLimit      = 5.0
	DefaultRateBurst      = 4
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxBackups  = 3
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            DefaultServerURL,
			DashboardURL:   DefaultDashboardURL,
			RequestTimeout: D(DefaultRequestTimeout),
			RateLimit:      DefaultRateLimit,
			RateBurst:      DefaultRateBurst,
		},
		Identity: IdentityConfig{
			UserDN: defaultUserDN(),
		},
		Timing: TimingConfig{
			GracePeriod:   D(DefaultGracePeriod),
			PopupDuration: D(DefaultPopupDuration),
			TickInterval:  D(DefaultTickInterval),
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
		UI: UIConfig{
			AltScreen: true,
			ShowHelp:  true,
		},
	}
}

// defaultUserDN falls back to the login name so a fresh install can talk
// to a development backend without editing the config.
func defaultUserDN() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the pwck8s configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".pwck8s"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pwck8s.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default path.
// A missing file is not an error: defaults and environment overrides apply.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// Override adjusts a loaded configuration before it is validated.
type Override func(*Config)

// LoadFromPath loads configuration from path, applies environment
// overrides and validates the result.
func LoadFromPath(path string) (*Config, error) {
	return LoadWithOverrides(path)
}

// LoadWithOverrides is LoadFromPath with extra overrides applied after the
// environment and before validation. Command-line flags use it, so a flag
// can repair a value the file leaves invalid.
func LoadWithOverrides(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides(os.Getenv)
	for _, override := range overrides {
		if override != nil {
			override(cfg)
		}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	data, err := cfg.TOML()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# pwck8s configuration file\n")
	buf.WriteString("# Durations use Go syntax: 500ms, 5s, 1m30s\n\n")
	buf.Write(data)

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML renders the configuration as TOML.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHTTPURL(c.Server.URL); err != nil {
		errs = append(errs, ValidationError{Field: "server.url", Message: err.Error()})
	}
	if c.Server.DashboardURL != "" {
		if err := validateHTTPURL(c.Server.DashboardURL); err != nil {
			errs = append(errs, ValidationError{Field: "server.dashboard_url", Message: err.Error()})
		}
	}
	if c.Server.RequestTimeout.Duration <= 0 {
		errs = append(errs, ValidationError{Field: "server.request_timeout", Message: "must be positive"})
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must not be negative"})
	}

	if strings.TrimSpace(c.Identity.UserDN) == "" {
		errs = append(errs, ValidationError{
			Field:   "identity.user_dn",
			Message: "must be set (config file, PWCK8S_USER_DN or --user-dn)",
		})
	}

	if c.Timing.GracePeriod.Duration < 0 {
		errs = append(errs, ValidationError{Field: "timing.grace_period", Message: "must not be negative"})
	}
	if c.Timing.PopupDuration.Duration < 0 {
		errs = append(errs, ValidationError{Field: "timing.popup_duration", Message: "must not be negative"})
	}
	if c.Timing.TickInterval.Duration < 10*time.Millisecond {
		errs = append(errs, ValidationError{Field: "timing.tick_interval", Message: "must be at least 10ms"})
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL '%s': scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL '%s': missing host", raw)
	}
	return nil
}

// SetDefaults fills zero-valued fields that a partial config file left empty.
func (c *Config) SetDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = DefaultServerURL
	}
	c.Server.URL = strings.TrimSuffix(c.Server.URL, "/")
	if c.Server.RequestTimeout.Duration == 0 {
		c.Server.RequestTimeout = D(DefaultRequestTimeout)
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = DefaultRateBurst
	}
	if c.Timing.TickInterval.Duration == 0 {
		c.Timing.TickInterval = D(DefaultTickInterval)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - PWCK8S_SERVER_URL: overrides server.url
//   - PWCK8S_DASHBOARD_URL: overrides server.dashboard_url
//   - PWCK8S_USER_DN: overrides identity.user_dn
//   - PWCK8S_GRACE_PERIOD: overrides timing.grace_period (e.g. "5s")
//   - PWCK8S_LOG_LEVEL: overrides logging.level
//   - PWCK8S_LOG_FILE: overrides logging.file
//   - PWCK8S_LOG_JSON: "1" or "true" switches to JSON logs
func (c *Config) ApplyEnvOverrides(getenv func(string) string) {
	if v := getenv("PWCK8S_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := getenv("PWCK8S_DASHBOARD_URL"); v != "" {
		c.Server.DashboardURL = v
	}
	if v := getenv("PWCK8S_USER_DN"); v != "" {
		c.Identity.UserDN = v
	}
	if v := getenv("PWCK8S_GRACE_PERIOD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timing.GracePeriod = D(d)
		}
	}
	if v := getenv("PWCK8S_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("PWCK8S_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := getenv("PWCK8S_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.JSON = b
		}
	}
}
