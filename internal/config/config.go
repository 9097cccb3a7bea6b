// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for techtalk-tui.
//
// Configuration lives in TOML at ~/.techtalk/config.toml with built-in
// defaults for every field. The backend section must point at a hosted
// TechTalk backend project (base URL plus the project's anon API key);
// everything else is optional.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete techtalk-tui configuration.
type Config struct {
	// Backend is the hosted backend project settings.
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// BackendConfig contains the hosted backend connection settings.
type BackendConfig struct {
	// URL is the backend project base URL (e.g. https://abc.supabase.co)
	URL string `toml:"url"`
	// AnonKey is the project's public anon API key
	AnonKey string `toml:"anon_key"`
	// AvatarBucket is the storage bucket holding profile pictures
	AvatarBucket string `toml:"avatar_bucket"`
	// TimeoutSecs is the per-request timeout for REST and storage calls
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light"
	Theme string `toml:"theme"`
	// CompactMode collapses message spacing for small terminals
	CompactMode bool `toml:"compact_mode"`
	// TimeFormat is the Go layout used for message timestamps
	TimeFormat string `toml:"time_format"`
}

// Timeout returns the per-request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error, off
	Level string `toml:"level"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:          "",
			AnonKey:      "",
			AvatarBucket: "images",
			TimeoutSecs:  30,
		},
		UI: UIConfig{
			Theme:       "dark",
			CompactMode: false,
			TimeFormat:  "Jan 2, 3:04 PM",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the techtalk configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".techtalk"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the config file, applying defaults for missing fields.
// A missing file is not an error; defaults are returned unchanged.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path, applying defaults
// for any fields the file does not set.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("could not parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to the default location with restrictive
// permissions (the anon key is not a secret, but the file may later hold
// one, so 0600 from the start).
func (c *Config) Save() error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = ""
	return enc.Encode(c)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks that the configuration is internally consistent.
// An empty backend URL is allowed here (the UI reports it at startup);
// a malformed one is not.
func (c *Config) Validate() error {
	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("backend.url %q is not a valid http(s) URL", c.Backend.URL)
		}
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = Default().Backend.TimeoutSecs
	}
	if c.Backend.AvatarBucket == "" {
		c.Backend.AvatarBucket = Default().Backend.AvatarBucket
	}
	switch c.UI.Theme {
	case "dark", "light":
	case "":
		c.UI.Theme = "dark"
	default:
		return fmt.Errorf("ui.theme %q is not one of dark, light", c.UI.Theme)
	}
	if c.UI.TimeFormat == "" {
		c.UI.TimeFormat = Default().UI.TimeFormat
	}
	return nil
}
