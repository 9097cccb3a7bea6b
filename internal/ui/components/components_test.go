// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/techtalk-tui/internal/model"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

func TestDisplayNameFallback(t *testing.T) {
	if got := DisplayName(model.Profile{ID: "a"}); got != NoNameFallback {
		t.Errorf("DisplayName = %q", got)
	}
	if got := DisplayName(model.Profile{ID: "a", DisplayName: "Ada"}); got != "Ada" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestPresenceText(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		profile model.Profile
		want    string
	}{
		{"online", model.Profile{IsOnline: true}, "Online"},
		{"never seen", model.Profile{}, "Offline"},
		{"ten minutes", model.Profile{LastSeen: now.Add(-10 * time.Minute)}, "Online 10 minutes ago"},
		{"just now", model.Profile{LastSeen: now.Add(-10 * time.Second)}, "Online less than a minute ago"},
		{"hours", model.Profile{LastSeen: now.Add(-3 * time.Hour)}, "Online 3 hours ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresenceText(tt.profile, now); got != tt.want {
				t.Errorf("PresenceText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRosterSelectionClamped(t *testing.T) {
	l := NewRosterList(styles.NewTheme("dark"))
	visible := []model.Profile{{ID: "a"}, {ID: "b"}}

	l.MoveDown(visible)
	l.MoveDown(visible)
	l.MoveDown(visible)
	if sel, ok := l.Selected(visible); !ok || sel.ID != "b" {
		t.Errorf("Selected = %+v, %v", sel, ok)
	}

	l.MoveUp(visible)
	l.MoveUp(visible)
	l.MoveUp(visible)
	if sel, ok := l.Selected(visible); !ok || sel.ID != "a" {
		t.Errorf("Selected = %+v, %v", sel, ok)
	}

	if _, ok := l.Selected(nil); ok {
		t.Error("Selected on empty list reported ok")
	}
}

func TestRosterSearchEditing(t *testing.T) {
	l := NewRosterList(styles.NewTheme("dark"))
	l.StartSearch()
	l.TypeRune('a')
	l.TypeRune('l')
	l.TypeRune('i')
	if l.Query() != "ali" {
		t.Errorf("Query = %q", l.Query())
	}
	l.Backspace()
	if l.Query() != "al" {
		t.Errorf("Query = %q", l.Query())
	}
	l.ClearSearch()
	if l.Query() != "" || l.Searching() {
		t.Errorf("ClearSearch left query=%q searching=%v", l.Query(), l.Searching())
	}
}

func TestComposerTrimsAndGuards(t *testing.T) {
	c := NewComposer(styles.NewTheme("dark"))

	// Whitespace-only drafts never submit.
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("   ")})
	if _, ok := c.Submit(); ok {
		t.Error("whitespace draft submitted")
	}

	c.Sent() // reset
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  hello  ")})
	content, ok := c.Submit()
	if !ok || content != "hello" {
		t.Errorf("Submit = %q, %v", content, ok)
	}

	// Double-submit while in flight is blocked.
	if _, ok := c.Submit(); ok {
		t.Error("submitted while sending")
	}
}

func TestComposerDraftSurvivesFailure(t *testing.T) {
	c := NewComposer(styles.NewTheme("dark"))
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("important")})

	if _, ok := c.Submit(); !ok {
		t.Fatal("submit failed")
	}
	c.SendFailed()

	// The draft is intact and can be resubmitted.
	content, ok := c.Submit()
	if !ok || content != "important" {
		t.Errorf("resubmit = %q, %v", content, ok)
	}
	c.Sent()

	// After a confirmed send the draft is gone.
	if _, ok := c.Submit(); ok {
		t.Error("submitted an empty draft after Sent")
	}
}

func TestAvatarOverlayLifecycle(t *testing.T) {
	o := NewAvatarOverlay(styles.NewTheme("dark"))
	if o.Visible() {
		t.Fatal("overlay starts visible")
	}

	o.Show()
	if !o.Visible() || o.Busy() {
		t.Fatal("Show state wrong")
	}

	// Empty path does not start an upload.
	if _, ok := o.Path(); ok {
		t.Error("empty path accepted")
	}

	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/tmp/face.png")})
	path, ok := o.Path()
	if !ok || path != "/tmp/face.png" {
		t.Fatalf("Path = %q, %v", path, ok)
	}
	if !o.Busy() {
		t.Error("not busy after Path")
	}

	// Busy overlay rejects a second upload.
	if _, ok := o.Path(); ok {
		t.Error("second upload started while busy")
	}

	o.Done(nil)
	if o.Busy() {
		t.Error("still busy after Done")
	}
}
