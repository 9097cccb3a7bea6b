// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/techtalk-tui/internal/model"
)

// refreshViewport rebuilds the viewport content from the timeline. Own
// messages render right-aligned in blue, the peer's left-aligned in purple,
// each with a timestamp line.
func (m *Model) refreshViewport() {
	if m.timeline == nil {
		m.viewport.SetContent("")
		return
	}

	width := m.viewport.Width
	bubbleMax := width * 3 / 4
	if bubbleMax < 16 {
		bubbleMax = 16
	}

	var b strings.Builder
	for _, msg := range m.timeline.All() {
		b.WriteString(m.renderMessage(msg, width, bubbleMax))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderMessage(msg model.Message, width, bubbleMax int) string {
	t := m.theme

	bubbleStyle := t.PeerBubble
	align := lipgloss.Left
	if msg.SentBy(m.session.UserID) {
		bubbleStyle = t.OwnBubble
		align = lipgloss.Right
	}

	bubble := bubbleStyle.MaxWidth(bubbleMax).Render(msg.Content)
	meta := t.MessageMeta.Render(msg.CreatedAt.Local().Format(m.timeFormat))
	block := lipgloss.JoinVertical(align, bubble, meta)

	return lipgloss.NewStyle().Width(width).Align(align).Render(block)
}

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme
	now := time.Now()

	sidebar := m.rosterList.View(m.visibleRoster())

	var header string
	if m.peer.ID == "" {
		header = m.header.ViewIdle()
	} else {
		header = m.header.View(m.peer, now)
	}

	var body string
	switch {
	case m.opening:
		body = lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+t.Muted.Render("opening conversation..."))
	case m.peer.ID == "":
		body = lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			t.Muted.Render("Pick a person on the left and press enter"))
	default:
		body = m.viewport.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, m.composer.View())
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	status := m.statusBar()

	screen := lipgloss.JoinVertical(lipgloss.Left, main, status)
	if m.overlay.Visible() {
		overlay := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.overlay.View())
		return overlay
	}
	return screen
}

func (m Model) statusBar() string {
	t := m.theme

	if m.errText != "" {
		return t.StatusBar.Width(m.width).Render(t.ErrorText.Render(m.errText))
	}

	shortcuts := []struct{ key, desc string }{
		{"tab", "switch pane"},
		{"/", "search"},
		{"ctrl+p", "picture"},
		{"ctrl+l", "sign out"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts = append(parts, t.ShortcutKey.Render(s.key)+" "+t.ShortcutDesc.Render(s.desc))
	}
	return t.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}
