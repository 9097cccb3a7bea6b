// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"github.com/jeranaias/techtalk-tui/internal/model"
)

// =============================================================================
// TIMELINE
// =============================================================================

// Timeline is the message cache for one open conversation, ordered by send
// time. Messages arrive from a history load and a live insert feed in no
// guaranteed order; Insert dedupes by message id so either arrival order
// yields the same timeline.
type Timeline struct {
	conversationID string
	messages       []model.Message
	seen           map[string]struct{}
}

// NewTimeline creates an empty timeline for one conversation.
func NewTimeline(conversationID string) *Timeline {
	return &Timeline{
		conversationID: conversationID,
		seen:           make(map[string]struct{}),
	}
}

// ConversationID returns the conversation this timeline belongs to.
func (t *Timeline) ConversationID() string {
	return t.conversationID
}

// Replace merges a history load into the timeline. Messages already present
// (delivered by the feed before the load returned) are kept, not duplicated.
func (t *Timeline) Replace(messages []model.Message) {
	for _, m := range messages {
		t.Insert(m)
	}
}

// Insert adds one message in timestamp order. Duplicate ids and messages
// for other conversations are dropped.
func (t *Timeline) Insert(m model.Message) {
	if m.ConversationID != t.conversationID {
		return
	}
	if _, dup := t.seen[m.ID]; dup {
		return
	}
	t.seen[m.ID] = struct{}{}

	// Most inserts land at the tail; walk back only as far as needed.
	i := len(t.messages)
	for i > 0 && t.messages[i-1].CreatedAt.After(m.CreatedAt) {
		i--
	}
	t.messages = append(t.messages, model.Message{})
	copy(t.messages[i+1:], t.messages[i:])
	t.messages[i] = m
}

// All returns the messages in timeline order. The slice is shared; callers
// must not mutate it.
func (t *Timeline) All() []model.Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Timeline) Len() int {
	return len(t.messages)
}

// Last returns the most recent message.
func (t *Timeline) Last() (model.Message, bool) {
	if len(t.messages) == 0 {
		return model.Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
