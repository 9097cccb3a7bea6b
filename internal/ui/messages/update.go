// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/chat"
	"github.com/jeranaias/techtalk-tui/internal/model"
	appsync "github.com/jeranaias/techtalk-tui/internal/sync"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.opening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clockTickMsg:
		// Nothing to mutate; the render picks up the new wall clock.
		return m, clockTickCmd()

	case rosterLoadedMsg:
		return m.onRosterLoaded(msg)

	case profileEventMsg:
		return m.onProfileEvent(msg)

	case conversationOpenedMsg:
		return m.onConversationOpened(msg)

	case messageEventMsg:
		return m.onMessageEvent(msg)

	case sentMsg:
		return m.onSent(msg)

	case avatarDoneMsg:
		m.overlay.Done(msg.err)
		if msg.err == nil {
			m.self.ProfilePicture = msg.url
		} else {
			m.log.Warn().Err(msg.err).Msg("avatar upload failed")
		}
		return m, nil

	case signOutDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("sign-out revoke failed")
		}
		m.Close()
		return m, func() tea.Msg { return SignedOutMsg{} }

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

// =============================================================================
// DATA MESSAGES
// =============================================================================

func (m Model) onRosterLoaded(msg rosterLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.errText = msg.err.Error()
		m.log.Error().Err(msg.err).Msg("roster load failed")
		return m, nil
	}
	m.errText = ""
	m.roster.Replace(msg.profiles)
	m.refreshPeer()
	return m, nil
}

func (m Model) onProfileEvent(msg profileEventMsg) (Model, tea.Cmd) {
	if msg.closed {
		return m, nil
	}

	switch msg.event.Type {
	case backend.FeedInsert:
		if p, err := model.DecodeProfile(msg.event.Row); err == nil {
			m.roster.Insert(p)
		}
	case backend.FeedUpdate:
		if p, err := model.DecodeProfile(msg.event.Row); err == nil {
			m.roster.Update(p)
			if p.ID == m.peer.ID {
				m.peer = p
			}
		}
	case backend.FeedDelete:
		if p, err := model.DecodeProfile(msg.event.OldRow); err == nil {
			m.roster.Remove(p.ID)
		}
	}

	if m.profileSub == nil {
		return m, nil
	}
	return m, waitForProfileEvent(m.profileSub)
}

func (m Model) onConversationOpened(msg conversationOpenedMsg) (Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.opening = false
	if msg.err != nil {
		m.errText = msg.err.Error()
		m.log.Error().Err(msg.err).Str("peer", m.peer.ID).Msg("failed to open conversation")
		return m, nil
	}

	m.errText = ""
	m.conversation = msg.conversation
	if m.timeline == nil || m.timeline.ConversationID() != msg.conversation.ID {
		m.timeline = appsync.NewTimeline(msg.conversation.ID)
	}
	m.timeline.Replace(msg.history)
	m.refreshViewport()
	m.viewport.GotoBottom()

	m.messageSub = m.svc.Client.Subscribe(chat.TableMessages,
		[]backend.FeedEventType{backend.FeedInsert}, "conversation_id=eq."+msg.conversation.ID)
	return m, m.startMessageFeedCmd(msg.gen)
}

func (m Model) onMessageEvent(msg messageEventMsg) (Model, tea.Cmd) {
	if msg.gen != m.gen || msg.closed {
		return m, nil
	}
	if message, err := model.DecodeMessage(msg.event.Row); err == nil && m.timeline != nil {
		m.timeline.Insert(message)
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
	if m.messageSub == nil {
		return m, nil
	}
	return m, waitForMessageEvent(msg.gen, m.messageSub)
}

func (m Model) onSent(msg sentMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.composer.SendFailed()
		m.errText = msg.err.Error()
		m.log.Error().Err(msg.err).Msg("send failed")
		return m, nil
	}
	m.composer.Sent()
	m.errText = ""
	// The feed will echo this message too; the timeline dedupes.
	if msg.gen == m.gen && m.timeline != nil {
		m.timeline.Insert(msg.message)
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
	return m, nil
}

// refreshPeer re-reads the selected peer from the roster after a bulk
// replace, so presence shown in the header tracks the cache.
func (m *Model) refreshPeer() {
	if m.peer.ID == "" {
		return
	}
	if p, ok := m.roster.Get(m.peer.ID); ok {
		m.peer = p
	}
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) onKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "ctrl+p":
		if !m.overlay.Visible() {
			m.overlay.Show()
			return m, nil
		}
	case "ctrl+l":
		return m, m.signOutCmd()
	}

	if m.overlay.Visible() {
		return m.onOverlayKey(msg)
	}
	if m.rosterList.Searching() {
		return m.onSearchKey(msg)
	}

	switch msg.String() {
	case "tab":
		if m.focus == focusRoster {
			m.focus = focusComposer
			m.composer.Focus()
		} else {
			m.focus = focusRoster
			m.composer.Blur()
		}
		return m, nil
	}

	if m.focus == focusRoster {
		return m.onRosterKey(msg)
	}
	return m.onComposerKey(msg)
}

func (m Model) onOverlayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlay.Hide()
		return m, nil
	case "enter":
		if path, ok := m.overlay.Path(); ok {
			return m, m.uploadAvatarCmd(path)
		}
		return m, nil
	}
	return m, m.overlay.Update(msg)
}

func (m Model) onSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.rosterList.ClearSearch()
		return m, nil
	case tea.KeyEnter:
		m.rosterList.EndSearch()
		return m, nil
	case tea.KeyBackspace:
		m.rosterList.Backspace()
		return m, nil
	case tea.KeyUp:
		m.rosterList.MoveUp(m.visibleRoster())
		return m, nil
	case tea.KeyDown:
		m.rosterList.MoveDown(m.visibleRoster())
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.rosterList.TypeRune(r)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) onRosterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.rosterList.StartSearch()
		return m, nil
	case "up", "k":
		m.rosterList.MoveUp(m.visibleRoster())
		return m, nil
	case "down", "j":
		m.rosterList.MoveDown(m.visibleRoster())
		return m, nil
	case "enter":
		if peer, ok := m.rosterList.Selected(m.visibleRoster()); ok {
			return m.openPeer(peer)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) onComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "enter" {
		if m.conversation.ID == "" || m.opening {
			return m, nil
		}
		if content, ok := m.composer.Submit(); ok {
			return m, m.sendCmd(m.gen, m.conversation.ID, content)
		}
		return m, nil
	}
	return m, m.composer.Update(msg)
}

// openPeer switches the open conversation to the given peer: the old
// message feed stops before anything about the new one starts, the
// generation advances, and the resolve+history round begins.
func (m Model) openPeer(peer model.Profile) (Model, tea.Cmd) {
	if peer.ID == m.peer.ID && m.conversation.ID != "" {
		return m, nil
	}

	if m.messageSub != nil {
		m.messageSub.Stop()
		m.messageSub = nil
	}

	m.gen++
	m.peer = peer
	m.conversation = model.Conversation{}
	m.timeline = nil
	m.opening = true
	m.errText = ""
	m.focus = focusComposer
	m.composer.Focus()
	m.refreshViewport()

	return m, tea.Batch(m.openConversationCmd(m.gen, peer.ID), m.spinner.Tick)
}
