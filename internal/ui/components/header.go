// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/techtalk-tui/internal/model"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
	"github.com/jeranaias/techtalk-tui/internal/util"
)

// =============================================================================
// CONVERSATION HEADER COMPONENT
// =============================================================================

// Header is the title bar above the open conversation: the peer's name and
// a live presence line.
type Header struct {
	theme *styles.Theme
	width int
}

// NewHeader creates the conversation header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme, width: 80}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// PresenceText formats the peer's presence line: "Online" while connected,
// otherwise how long ago they were last seen. A peer that has never been
// seen offline gets the bare "Offline".
func PresenceText(p model.Profile, now time.Time) string {
	if p.IsOnline {
		return "Online"
	}
	if p.LastSeen.IsZero() {
		return "Offline"
	}
	return "Online " + util.RelativeTime(p.LastSeen, now)
}

// View renders the header for the given peer.
func (h *Header) View(peer model.Profile, now time.Time) string {
	t := h.theme
	innerWidth := h.width - 6
	if innerWidth < 10 {
		innerWidth = 10
	}

	indicator := t.RosterOffline.Render(styles.StatusIndicators.Offline)
	if peer.IsOnline {
		indicator = t.RosterOnline.Render(styles.StatusIndicators.Online)
	}

	name := t.HeaderTitle.Render(util.TruncateWidth(DisplayName(peer), innerWidth-4))
	presence := t.HeaderPresence.Render(util.TruncateWidth(PresenceText(peer, now), innerWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, indicator+" "+name, presence)
	return t.Header.Width(h.width).Render(content)
}

// ViewIdle renders the header when no conversation is open.
func (h *Header) ViewIdle() string {
	t := h.theme
	brand := t.HeaderBrand.Render("TechTalk")
	hint := t.HeaderPresence.Render("select someone to start chatting")
	content := lipgloss.JoinVertical(lipgloss.Left, brand, hint)
	return t.Header.Width(h.width).Render(content)
}
