// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the structured logger for techtalk-tui.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileName is the log file name inside the application directory.
const FileName = "techtalk.log"

// Open creates a logger writing to dir/techtalk.log, creating the directory
// if needed. The returned close function flushes and closes the file; it is
// safe to call even when Open fell back to a no-op logger.
func Open(dir string, level string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Nop(), func() {}, err
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return Nop(), func() {}, err
	}

	logger := New(f, level)
	return logger, func() { _ = f.Close() }, nil
}

// New creates a configured zerolog.Logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "techtalk-tui").
		Logger()
}

// Nop returns a logger that discards everything. Used in tests and as the
// fallback when the log file cannot be opened.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// parseLevel maps a config string to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
