// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the structured logger for techtalk-tui.
//
// The TUI owns stdout, so all diagnostics are written to a log file under
// the application directory (~/.techtalk/techtalk.log by default). Read
// failures from the backend are logged here and never surfaced in the UI;
// write failures are logged here in addition to their inline display.
package logging
