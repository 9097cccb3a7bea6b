// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderPresence lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// ROSTER SIDEBAR STYLES
	// ==========================================================================

	Sidebar            lipgloss.Style
	SidebarTitle       lipgloss.Style
	RosterItem         lipgloss.Style
	RosterItemSelected lipgloss.Style
	RosterOnline       lipgloss.Style
	RosterOffline      lipgloss.Style
	SearchPrompt       lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	OwnBubble   lipgloss.Style
	PeerBubble  lipgloss.Style
	MessageMeta lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// AUTH FORM STYLES
	// ==========================================================================

	AuthBox          lipgloss.Style
	AuthTitle        lipgloss.Style
	AuthLabel        lipgloss.Style
	AuthButton       lipgloss.Style
	AuthButtonActive lipgloss.Style
	AuthHint         lipgloss.Style

	// ==========================================================================
	// OVERLAY AND FEEDBACK STYLES
	// ==========================================================================

	OverlayBox   lipgloss.Style
	OverlayTitle lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorText    lipgloss.Style
	Spinner      lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme with all styles configured. name is the
// configured theme ("dark" or "light"); empty falls back to terminal
// background detection.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor

	isDark := termenv.HasDarkBackground()
	switch name {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
		Width:        80,
		Height:       24,
	}

	t.App = lipgloss.NewStyle().
		Background(Surface)
	t.Container = lipgloss.NewStyle().
		Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.HeaderPresence = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)
	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)
	t.RosterItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.RosterItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)
	t.RosterOnline = lipgloss.NewStyle().
		Foreground(Emerald)
	t.RosterOffline = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.SearchPrompt = lipgloss.NewStyle().
		Foreground(Cyan)

	t.OwnBubble = lipgloss.NewStyle().
		Background(OwnBubbleBg).
		Foreground(OwnBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OwnBubbleBorder).
		Padding(0, 1)
	t.PeerBubble = lipgloss.NewStyle().
		Background(PeerBubbleBg).
		Foreground(PeerBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PeerBubbleBorder).
		Padding(0, 1)
	t.MessageMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.AuthBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3)
	t.AuthTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.AuthLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.AuthButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.AuthButtonActive = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Purple).
		Bold(true).
		Padding(0, 2)
	t.AuthHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Padding(1, 2)
	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	return t
}

// SetSize records the current terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Reload rebuilds every style for the named theme in place, keeping the
// recorded dimensions. Mounted views share the Theme pointer, so a config
// edit restyles them on their next render without a remount.
func (t *Theme) Reload(name string) {
	width, height := t.Width, t.Height
	*t = *NewTheme(name)
	t.Width = width
	t.Height = height
}
