// TechTalk TUI - a terminal client for two-person direct messaging.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is the app shell: it wires config, logging, the backend client
// and services together, and runs the session gate that routes between the
// auth forms and the chat view.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/chat"
	"github.com/jeranaias/techtalk-tui/internal/config"
	"github.com/jeranaias/techtalk-tui/internal/logging"
	"github.com/jeranaias/techtalk-tui/internal/model"
	"github.com/jeranaias/techtalk-tui/internal/ui/auth"
	"github.com/jeranaias/techtalk-tui/internal/ui/messages"
	"github.com/jeranaias/techtalk-tui/internal/ui/styles"
)

// =============================================================================
// SESSION GATE
// =============================================================================

type appState int

const (
	stateLoading appState = iota // restoring a persisted session
	stateAuth                    // no session: sign-up / sign-in forms
	stateChat                    // signed in
)

// sessionRestoredMsg carries the startup restore result. session is nil
// when no usable session exists; any restore failure looks the same as
// having none.
type sessionRestoredMsg struct {
	session *backend.Session
	profile model.Profile
}

// authChangeMsg relays a backend session transition.
type authChangeMsg backend.AuthChange

// configChangedMsg relays an on-disk config edit.
type configChangedMsg struct{ cfg *config.Config }

type app struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *backend.Client
	svc    messages.Services
	log    zerolog.Logger

	state   appState
	auth    auth.Model
	chat    messages.Model
	spinner spinner.Model

	authChanges <-chan backend.AuthChange
	width       int
	height      int
}

func newApp(cfg *config.Config, client *backend.Client, log zerolog.Logger) app {
	theme := styles.NewTheme(cfg.UI.Theme)

	profiles := chat.NewProfiles(client)
	svc := messages.Services{
		Client:        client,
		Profiles:      profiles,
		Conversations: chat.NewConversations(client),
		Messages:      chat.NewMessages(client),
		Avatars:       chat.NewAvatars(client, profiles, cfg.Backend.AvatarBucket),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return app{
		cfg:         cfg,
		theme:       theme,
		client:      client,
		svc:         svc,
		log:         log,
		state:       stateLoading,
		auth:        auth.New(theme, client, profiles, log),
		spinner:     sp,
		authChanges: client.AuthChanges(),
	}
}

func (a app) Init() tea.Cmd {
	return tea.Batch(a.restoreSessionCmd(), a.waitForAuthChange(), a.spinner.Tick)
}

// restoreSessionCmd tries the persisted session. A session that restores
// but whose profile cannot be loaded is treated as no session.
func (a app) restoreSessionCmd() tea.Cmd {
	client := a.client
	profiles := a.svc.Profiles
	log := a.log
	return func() tea.Msg {
		session := client.RestoreSession()
		if session == nil {
			return sessionRestoredMsg{}
		}
		profile, err := profiles.Ensure(context.Background(), session.UserID, session.DisplayName)
		if err != nil {
			log.Warn().Err(err).Msg("restored session unusable, starting signed out")
			return sessionRestoredMsg{}
		}
		return sessionRestoredMsg{session: session, profile: profile}
	}
}

func (a app) waitForAuthChange() tea.Cmd {
	ch := a.authChanges
	return func() tea.Msg {
		return authChangeMsg(<-ch)
	}
}

// =============================================================================
// UPDATE
// =============================================================================

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.auth.SetSize(msg.Width, msg.Height)
		if a.state == stateChat {
			var cmd tea.Cmd
			a.chat, cmd = a.chat.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionRestoredMsg:
		if msg.session == nil {
			a.state = stateAuth
			return a, a.auth.Init()
		}
		return a.enterChat(msg.session, msg.profile)

	case auth.SignedInMsg:
		return a.enterChat(msg.Session, msg.Profile)

	case messages.SignedOutMsg:
		return a.enterAuth(nil)

	case authChangeMsg:
		// A cleared session while chatting (expiry, revoke elsewhere)
		// drops back to the auth forms.
		if msg.Session == nil && a.state == stateChat {
			a.chat.Close()
			return a.enterAuth(a.waitForAuthChange())
		}
		return a, a.waitForAuthChange()

	case configChangedMsg:
		a.cfg = msg.cfg
		// In place: the mounted auth/chat models hold the same pointer.
		a.theme.Reload(msg.cfg.UI.Theme)
		a.log.Info().Str("theme", msg.cfg.UI.Theme).Msg("config reloaded")
		return a, nil

	case spinner.TickMsg:
		if a.state == stateLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && a.state != stateChat {
			return a, tea.Quit
		}
	}

	switch a.state {
	case stateAuth:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		return a, cmd
	case stateChat:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a app) enterAuth(extra tea.Cmd) (tea.Model, tea.Cmd) {
	a.state = stateAuth
	a.auth = auth.New(a.theme, a.client, a.svc.Profiles, a.log)
	a.auth.SetSize(a.width, a.height)
	if extra != nil {
		return a, tea.Batch(a.auth.Init(), extra)
	}
	return a, a.auth.Init()
}

func (a app) enterChat(session *backend.Session, profile model.Profile) (tea.Model, tea.Cmd) {
	a.state = stateChat
	a.chat = messages.New(a.theme, a.svc, session, profile, a.cfg.UI.TimeFormat, a.log)
	if a.width > 0 {
		var sizeCmd tea.Cmd
		a.chat, sizeCmd = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, tea.Batch(a.chat.Init(), sizeCmd)
	}
	return a, a.chat.Init()
}

// =============================================================================
// VIEW
// =============================================================================

func (a app) View() string {
	switch a.state {
	case stateLoading:
		msg := a.spinner.View() + " " + a.theme.Muted.Render("restoring session...")
		if a.width == 0 {
			return msg
		}
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, msg)
	case stateAuth:
		return a.auth.View()
	default:
		return a.chat.View()
	}
}

// =============================================================================
// ENTRY POINT
// =============================================================================

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := config.EnsureDir(); err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	stateDir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}

	log, closeLog, err := logging.Open(stateDir, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	client, err := backend.New(backend.Config{
		BaseURL:  cfg.Backend.URL,
		AnonKey:  cfg.Backend.AnonKey,
		StateDir: stateDir,
		Timeout:  cfg.Backend.Timeout(),
	})
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	p := tea.NewProgram(newApp(cfg, client, log), tea.WithAltScreen())

	// Live config reload: saved edits re-theme the running app.
	if cfgPath, err := config.Path(); err == nil {
		watcher, err := config.NewWatcher(cfgPath, func(next *config.Config) {
			p.Send(configChangedMsg{cfg: next})
		})
		if err == nil {
			if err := watcher.Watch(); err != nil {
				log.Warn().Err(err).Msg("config watcher unavailable")
			}
			defer watcher.Close()
		} else {
			log.Warn().Err(err).Msg("config watcher unavailable")
		}
	}

	log.Info().Str("backend", cfg.Backend.URL).Msg("techtalk starting")
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "techtalk:", err)
		os.Exit(1)
	}
}
