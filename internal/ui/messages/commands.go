// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/techtalk-tui/internal/backend"
)

// =============================================================================
// ROSTER AND PROFILE FEED
// =============================================================================

func (m Model) loadRosterCmd() tea.Cmd {
	profiles := m.svc.Profiles
	selfID := m.session.UserID
	return func() tea.Msg {
		loaded, err := profiles.Others(context.Background(), selfID)
		return rosterLoadedMsg{profiles: loaded, err: err}
	}
}

// startProfileFeedCmd starts the profiles subscription created with the
// model and begins the wait loop. The handle already lives on the model, so
// a teardown racing this command finds the subscription and stops it; Start
// then fails here and the wait loop never begins.
func (m Model) startProfileFeedCmd() tea.Cmd {
	sub := m.profileSub
	log := m.log
	return func() tea.Msg {
		if err := sub.Start(context.Background()); err != nil {
			log.Error().Err(err).Msg("profile feed unavailable")
			return profileEventMsg{closed: true}
		}
		return waitForProfileEvent(sub)()
	}
}

// waitForProfileEvent blocks on the subscription channel and converts one
// event into a message; the update loop re-issues it after each delivery.
func waitForProfileEvent(sub *backend.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return profileEventMsg{closed: true}
		}
		return profileEventMsg{event: ev}
	}
}

// =============================================================================
// CONVERSATION LIFECYCLE
// =============================================================================

// openConversationCmd resolves the conversation with the peer and loads its
// history in one round. gen stamps the result so a stale open is discarded.
func (m Model) openConversationCmd(gen int, peerID string) tea.Cmd {
	conversations := m.svc.Conversations
	messages := m.svc.Messages
	selfID := m.session.UserID
	return func() tea.Msg {
		conv, err := conversations.Resolve(context.Background(), selfID, peerID)
		if err != nil {
			return conversationOpenedMsg{gen: gen, err: err}
		}
		history, err := messages.History(context.Background(), conv.ID)
		if err != nil {
			return conversationOpenedMsg{gen: gen, err: err}
		}
		return conversationOpenedMsg{gen: gen, conversation: conv, history: history}
	}
}

// startMessageFeedCmd starts the conversation feed installed by the open
// handler. As with the profile feed, the handle is on the model before this
// runs, so Close reaches it even when sign-out races the start.
func (m Model) startMessageFeedCmd(gen int) tea.Cmd {
	sub := m.messageSub
	log := m.log
	return func() tea.Msg {
		if err := sub.Start(context.Background()); err != nil {
			log.Error().Err(err).Msg("message feed unavailable")
			return messageEventMsg{gen: gen, closed: true}
		}
		return waitForMessageEvent(gen, sub)()
	}
}

func waitForMessageEvent(gen int, sub *backend.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return messageEventMsg{gen: gen, closed: true}
		}
		return messageEventMsg{gen: gen, event: ev}
	}
}

// sendCmd stores one message.
func (m Model) sendCmd(gen int, conversationID, content string) tea.Cmd {
	messages := m.svc.Messages
	selfID := m.session.UserID
	return func() tea.Msg {
		msg, err := messages.Send(context.Background(), conversationID, selfID, content)
		return sentMsg{gen: gen, message: msg, err: err}
	}
}

// =============================================================================
// AVATAR AND SESSION
// =============================================================================

// uploadAvatarCmd reads a local image file and runs the avatar pipeline.
func (m Model) uploadAvatarCmd(path string) tea.Cmd {
	avatars := m.svc.Avatars
	selfID := m.session.UserID
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return avatarDoneMsg{err: err}
		}
		url, err := avatars.Upload(context.Background(), selfID, filepath.Base(path), data)
		return avatarDoneMsg{url: url, err: err}
	}
}

// signOutCmd flips presence off, then revokes the session. The presence
// write happens first so peers see the last-seen stamp even when the
// revoke fails.
func (m Model) signOutCmd() tea.Cmd {
	profiles := m.svc.Profiles
	client := m.svc.Client
	selfID := m.session.UserID
	log := m.log
	return func() tea.Msg {
		if err := profiles.SetOffline(context.Background(), selfID); err != nil {
			log.Warn().Err(err).Msg("failed to mark profile offline")
		}
		return signOutDoneMsg{err: client.SignOut(context.Background())}
	}
}

// markOnlineCmd flips presence on after sign-in. Fire-and-forget: a failed
// presence write is logged, not surfaced.
func (m Model) markOnlineCmd() tea.Cmd {
	profiles := m.svc.Profiles
	selfID := m.session.UserID
	log := m.log
	return func() tea.Msg {
		if err := profiles.SetOnline(context.Background(), selfID); err != nil {
			log.Warn().Err(err).Msg("failed to mark profile online")
		}
		return nil
	}
}

// clockTickCmd refreshes the header presence line twice a minute.
func clockTickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
