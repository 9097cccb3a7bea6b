// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

import (
	"time"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/model"
)

// SignedOutMsg tells the app shell the user signed out.
type SignedOutMsg struct{}

// rosterLoadedMsg carries the roster bulk load result.
type rosterLoadedMsg struct {
	profiles []model.Profile
	err      error
}

// profileEventMsg carries one profile change-feed event. closed is set when
// the subscription's channel closed and the wait loop should end.
type profileEventMsg struct {
	event  backend.FeedEvent
	closed bool
}

// conversationOpenedMsg carries the resolve+history result for a peer.
type conversationOpenedMsg struct {
	gen          int
	conversation model.Conversation
	history      []model.Message
	err          error
}

// messageEventMsg carries one message change-feed event for a generation.
type messageEventMsg struct {
	gen    int
	event  backend.FeedEvent
	closed bool
}

// sentMsg carries a send result.
type sentMsg struct {
	gen     int
	message model.Message
	err     error
}

// avatarDoneMsg carries an avatar upload result.
type avatarDoneMsg struct {
	url string
	err error
}

// signOutDoneMsg reports the sign-out request finished (success or not,
// the session is gone locally either way).
type signOutDoneMsg struct{ err error }

// clockTickMsg refreshes the relative presence line in the header.
type clockTickMsg time.Time
