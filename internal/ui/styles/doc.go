// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the TechTalk TUI.
//
// The palette lives in colors.go as Lip Gloss adaptive colors; theme.go
// assembles them into the Theme struct that every view renders through.
// The configured theme name ("dark" or "light") overrides terminal
// background detection, matching the app's settings toggle.
package styles
