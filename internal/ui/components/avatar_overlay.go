// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

// =============================================================================
// AVATAR UPLOAD OVERLAY
// =============================================================================

// AvatarOverlay is the modal for changing the profile picture: a path
// prompt, then an uploading/result status. There is no terminal file
// picker, so the user pastes a local image path.
type AvatarOverlay struct {
	theme   *styles.Theme
	input   textinput.Model
	visible bool
	busy    bool
	status  string
	failed  bool
}

// NewAvatarOverlay creates the overlay, hidden.
func NewAvatarOverlay(theme *styles.Theme) *AvatarOverlay {
	ti := textinput.New()
	ti.Placeholder = "/path/to/image.png"
	ti.Prompt = "> "
	return &AvatarOverlay{theme: theme, input: ti}
}

// Visible reports whether the overlay is shown.
func (o *AvatarOverlay) Visible() bool {
	return o.visible
}

// Busy reports whether an upload is in flight.
func (o *AvatarOverlay) Busy() bool {
	return o.busy
}

// Show opens the overlay with a fresh prompt.
func (o *AvatarOverlay) Show() {
	o.visible = true
	o.busy = false
	o.status = ""
	o.failed = false
	o.input.Reset()
	o.input.Focus()
}

// Hide closes the overlay. An in-flight upload keeps running; only the
// modal goes away.
func (o *AvatarOverlay) Hide() {
	o.visible = false
	o.input.Blur()
}

// Path returns the entered file path and marks the overlay busy.
func (o *AvatarOverlay) Path() (string, bool) {
	if o.busy || o.input.Value() == "" {
		return "", false
	}
	o.busy = true
	o.status = "uploading..."
	o.failed = false
	o.input.Blur()
	return o.input.Value(), true
}

// Done records the upload result.
func (o *AvatarOverlay) Done(err error) {
	o.busy = false
	if err != nil {
		o.failed = true
		o.status = err.Error()
		o.input.Focus()
		return
	}
	o.failed = false
	o.status = "profile picture updated"
}

// Update forwards key events to the path input.
func (o *AvatarOverlay) Update(msg tea.Msg) tea.Cmd {
	if o.busy {
		return nil
	}
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return cmd
}

// View renders the overlay box.
func (o *AvatarOverlay) View() string {
	t := o.theme

	title := t.OverlayTitle.Render("Change profile picture")
	hint := t.Muted.Render("image file, 5MB max - enter to upload, esc to close")

	lines := []string{title, hint, "", o.input.View()}
	if o.status != "" {
		status := t.Muted.Render(o.status)
		if o.failed {
			status = t.ErrorText.Render(o.status)
		}
		lines = append(lines, "", status)
	}

	return t.OverlayBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
