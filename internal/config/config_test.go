// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for techtalk-tui.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Backend.AvatarBucket != "images" {
		t.Errorf("default avatar bucket = %q, want %q", cfg.Backend.AvatarBucket, "images")
	}
	if cfg.Backend.TimeoutSecs <= 0 {
		t.Error("default timeout should be positive")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("default theme = %q, want dark", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("missing file theme = %q, want default dark", cfg.UI.Theme)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[backend]\nurl = \"https://example.supabase.co\"\nanon_key = \"anon\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Backend.URL != "https://example.supabase.co" {
		t.Errorf("backend url = %q", cfg.Backend.URL)
	}
	if cfg.Backend.AvatarBucket != "images" {
		t.Errorf("avatar bucket should keep default, got %q", cfg.Backend.AvatarBucket)
	}
	if cfg.UI.TimeFormat == "" {
		t.Error("time format should keep default")
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not toml ]["), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed file should return an error")
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"empty url allowed", func(c *Config) { c.Backend.URL = "" }, false},
		{"https url", func(c *Config) { c.Backend.URL = "https://x.supabase.co" }, false},
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://x" }, true},
		{"not a url", func(c *Config) { c.Backend.URL = "://" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"empty theme defaults", func(c *Config) { c.UI.Theme = "" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// =============================================================================
// SAVE / ROUNDTRIP TESTS
// =============================================================================

func TestSaveTo_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Backend.URL = "https://proj.supabase.co"
	cfg.Backend.AnonKey = "anon-key"
	cfg.UI.CompactMode = true

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Backend.URL != cfg.Backend.URL {
		t.Errorf("roundtrip url = %q, want %q", loaded.Backend.URL, cfg.Backend.URL)
	}
	if !loaded.UI.CompactMode {
		t.Error("roundtrip lost compact_mode")
	}
}
