// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the techtalk-tui application.
//
// This package contains common helper functions used throughout the
// application for display-safe string manipulation and relative time
// formatting.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK safe)
//
// Time Utilities:
//   - RelativeTime: "5 minutes ago" style formatting for last-seen lines
package util
