// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for techtalk-tui.
//
// Configuration file location: ~/.techtalk/config.toml. Every field has a
// built-in default; the only settings a user must provide are the backend
// project URL and anon key. A Watcher is available for live reload of UI
// options while the client is running.
package config
