// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/techtalk-tui/internal/model"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
	"github.com/jeranaias/techtalk-tui/internal/util"
)

// NoNameFallback is rendered for profiles without a display name.
const NoNameFallback = "No name set"

// DisplayName returns the profile's renderable name.
func DisplayName(p model.Profile) string {
	if p.DisplayName == "" {
		return NoNameFallback
	}
	return p.DisplayName
}

// =============================================================================
// ROSTER SIDEBAR COMPONENT
// =============================================================================

// RosterList is the sidebar listing other users, with a search filter and a
// movable selection. It owns the query and cursor; the profiles themselves
// come from the roster cache each render, so presence flips show up without
// any component bookkeeping.
type RosterList struct {
	theme  *styles.Theme
	width  int
	height int

	query     string
	searching bool
	cursor    int
}

// NewRosterList creates the sidebar component.
func NewRosterList(theme *styles.Theme) *RosterList {
	return &RosterList{theme: theme, width: 28, height: 20}
}

// SetSize updates the sidebar dimensions.
func (l *RosterList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the sidebar's outer width.
func (l *RosterList) Width() int {
	return l.width
}

// Searching reports whether the search field has focus.
func (l *RosterList) Searching() bool {
	return l.searching
}

// StartSearch gives the search field focus.
func (l *RosterList) StartSearch() {
	l.searching = true
}

// EndSearch drops search focus, keeping the current filter.
func (l *RosterList) EndSearch() {
	l.searching = false
}

// ClearSearch drops focus and resets the filter.
func (l *RosterList) ClearSearch() {
	l.searching = false
	l.query = ""
	l.cursor = 0
}

// Query returns the current search text.
func (l *RosterList) Query() string {
	return l.query
}

// TypeRune appends a character to the search text.
func (l *RosterList) TypeRune(r rune) {
	l.query += string(r)
	l.cursor = 0
}

// Backspace removes the last character of the search text.
func (l *RosterList) Backspace() {
	if l.query == "" {
		return
	}
	runes := []rune(l.query)
	l.query = string(runes[:len(runes)-1])
	l.cursor = 0
}

// MoveUp moves the selection up within the filtered list.
func (l *RosterList) MoveUp(visible []model.Profile) {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clamp(visible)
}

// MoveDown moves the selection down within the filtered list.
func (l *RosterList) MoveDown(visible []model.Profile) {
	l.cursor++
	l.clamp(visible)
}

// Selected returns the profile under the cursor.
func (l *RosterList) Selected(visible []model.Profile) (model.Profile, bool) {
	l.clamp(visible)
	if len(visible) == 0 {
		return model.Profile{}, false
	}
	return visible[l.cursor], true
}

func (l *RosterList) clamp(visible []model.Profile) {
	if l.cursor >= len(visible) {
		l.cursor = len(visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// View renders the sidebar: title, search line, then the filtered entries
// with presence indicators, selection highlighted.
func (l *RosterList) View(visible []model.Profile) string {
	t := l.theme
	innerWidth := l.width - 2

	var b strings.Builder
	b.WriteString(t.SidebarTitle.Render(util.PadRight("People", innerWidth)))
	b.WriteString("\n")

	search := "/" + l.query
	if l.searching {
		search += "_"
	}
	b.WriteString(t.SearchPrompt.Render(util.TruncateWidth(search, innerWidth)))
	b.WriteString("\n\n")

	if len(visible) == 0 {
		b.WriteString(t.Muted.Render("nobody here"))
	}

	rows := l.height - 4
	for i, p := range visible {
		if i >= rows {
			break
		}
		indicator := styles.StatusIndicators.Offline
		indicatorStyle := t.RosterOffline
		if p.IsOnline {
			indicator = styles.StatusIndicators.Online
			indicatorStyle = t.RosterOnline
		}

		name := util.PadRight(util.TruncateWidth(DisplayName(p), innerWidth-6), innerWidth-6)
		line := indicatorStyle.Render(indicator) + " " + name

		entry := t.RosterItem
		if i == l.cursor {
			entry = t.RosterItemSelected
		}
		b.WriteString(entry.Render(line))
		b.WriteString("\n")
	}

	return t.Sidebar.Height(l.height).Width(l.width).Render(b.String())
}
