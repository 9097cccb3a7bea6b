// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/chat"
	"github.com/jeranaias/techtalk-tui/internal/model"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SignedInMsg is delivered to the app shell when authentication completes
// and the profile row is guaranteed to exist.
type SignedInMsg struct {
	Session *backend.Session
	Profile model.Profile
}

type signedUpMsg struct{}

type authErrMsg struct{ err error }

// =============================================================================
// FORM MODES
// =============================================================================

type mode int

const (
	modeSignUp mode = iota // default form
	modeSignIn
)

// Field indexes within the focus cycle.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the authentication view.
type Model struct {
	theme    *styles.Theme
	client   *backend.Client
	profiles *chat.Profiles
	log      zerolog.Logger

	mode   mode
	inputs [fieldCount]textinput.Model
	focus  int

	busy    bool
	notice  string
	errText string

	width  int
	height int
}

// New creates the auth view, opened on the sign-up form.
func New(theme *styles.Theme, client *backend.Client, profiles *chat.Profiles, log zerolog.Logger) Model {
	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m := Model{
		theme:    theme,
		client:   client,
		profiles: profiles,
		log:      log,
		mode:     modeSignUp,
		inputs:   [fieldCount]textinput.Model{name, email, password},
	}
	m.setFocus(fieldName)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize records the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for f := range m.inputs {
		if f == i {
			m.inputs[f].Focus()
		} else {
			m.inputs[f].Blur()
		}
	}
}

// firstField is the top of the focus cycle for the active form; sign-in
// has no display name field.
func (m Model) firstField() int {
	if m.mode == modeSignIn {
		return fieldEmail
	}
	return fieldName
}

func (m *Model) cycleFocus(delta int) {
	first := m.firstField()
	span := fieldCount - first
	next := first + ((m.focus-first+delta)%span+span)%span
	m.setFocus(next)
}

func (m *Model) switchMode() {
	if m.mode == modeSignUp {
		m.mode = modeSignIn
	} else {
		m.mode = modeSignUp
	}
	m.errText = ""
	m.notice = ""
	m.setFocus(m.firstField())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case signedUpMsg:
		m.busy = false
		m.notice = "Account created - check your email to confirm, then sign in"
		m.mode = modeSignIn
		m.setFocus(fieldEmail)
		return m, nil

	case authErrMsg:
		m.busy = false
		m.errText = msg.err.Error()
		m.log.Warn().Err(msg.err).Msg("auth request failed")
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "ctrl+t":
			m.switchMode()
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	if email == "" || password == "" {
		m.errText = "email and password are required"
		return m, nil
	}

	m.busy = true
	m.errText = ""
	m.notice = ""

	if m.mode == modeSignUp {
		name := strings.TrimSpace(m.inputs[fieldName].Value())
		return m, m.signUpCmd(email, password, name)
	}
	return m, m.signInCmd(email, password)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) signUpCmd(email, password, displayName string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.SignUp(context.Background(), email, password, displayName); err != nil {
			return authErrMsg{err: err}
		}
		return signedUpMsg{}
	}
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	client := m.client
	profiles := m.profiles
	return func() tea.Msg {
		session, err := client.SignIn(context.Background(), email, password)
		if err != nil {
			return authErrMsg{err: err}
		}
		// First sign-in creates the profile row; later ones just load it.
		profile, err := profiles.Ensure(context.Background(), session.UserID, session.DisplayName)
		if err != nil {
			return authErrMsg{err: err}
		}
		return SignedInMsg{Session: session, Profile: profile}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	t := m.theme

	title := "Create your account"
	action := "sign up"
	alt := "ctrl+t: sign in instead"
	if m.mode == modeSignIn {
		title = "Welcome back"
		action = "sign in"
		alt = "ctrl+t: create an account"
	}

	lines := []string{
		t.HeaderBrand.Render("TechTalk"),
		t.AuthTitle.Render(title),
		"",
	}
	if m.mode == modeSignUp {
		lines = append(lines, t.AuthLabel.Render("Name"), m.inputs[fieldName].View(), "")
	}
	lines = append(lines,
		t.AuthLabel.Render("Email"), m.inputs[fieldEmail].View(), "",
		t.AuthLabel.Render("Password"), m.inputs[fieldPassword].View(), "",
	)

	button := t.AuthButtonActive.Render("enter: " + action)
	if m.busy {
		button = t.AuthButton.Render("working...")
	}
	lines = append(lines, button)

	if m.notice != "" {
		lines = append(lines, "", t.Muted.Render(m.notice))
	}
	if m.errText != "" {
		lines = append(lines, "", t.ErrorText.Render(m.errText))
	}
	lines = append(lines, "", t.AuthHint.Render(alt))

	box := t.AuthBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
