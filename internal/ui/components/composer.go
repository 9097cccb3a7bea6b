// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE COMPOSER COMPONENT
// =============================================================================

// Composer is the message input line. Draft text survives a failed send:
// the input is cleared only when the owning view confirms the message was
// stored, never optimistically.
type Composer struct {
	theme   *styles.Theme
	input   textinput.Model
	width   int
	sending bool
}

// NewComposer creates the composer with focus.
func NewComposer(theme *styles.Theme) *Composer {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()
	return &Composer{theme: theme, input: ti, width: 80}
}

// SetWidth updates the composer width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.Width = width - 8
}

// Focus gives the input keyboard focus.
func (c *Composer) Focus() {
	c.input.Focus()
}

// Blur removes keyboard focus.
func (c *Composer) Blur() {
	c.input.Blur()
}

// Focused reports whether the input has focus.
func (c *Composer) Focused() bool {
	return c.input.Focused()
}

// Sending reports whether a send is in flight.
func (c *Composer) Sending() bool {
	return c.sending
}

// Update forwards key events to the underlying input.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if c.sending {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// Submit returns the trimmed draft and marks the composer busy. ok is false
// when the trimmed draft is empty: whitespace-only drafts never reach the
// network, and the (whitespace) draft is left as-is.
func (c *Composer) Submit() (string, bool) {
	content := strings.TrimSpace(c.input.Value())
	if content == "" || c.sending {
		return "", false
	}
	c.sending = true
	return content, true
}

// Sent confirms the in-flight send succeeded and clears the draft.
func (c *Composer) Sent() {
	c.sending = false
	c.input.Reset()
}

// SendFailed confirms the in-flight send failed; the draft is kept so the
// user can retry by pressing enter again.
func (c *Composer) SendFailed() {
	c.sending = false
}

// View renders the composer box.
func (c *Composer) View() string {
	t := c.theme
	body := c.input.View()
	if c.sending {
		body = t.Muted.Render("sending...")
	}
	return t.InputContainer.Width(c.width).Render(body)
}
