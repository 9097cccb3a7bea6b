// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the TechTalk TUI:
// the roster sidebar, the conversation header, the message composer, and the
// avatar upload overlay. Components hold only presentation state; the data
// they render comes in per frame from the owning view's caches.
package components
