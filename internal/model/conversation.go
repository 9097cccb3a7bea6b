// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the typed entities of the TechTalk data model.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation pairs exactly two profiles for message exchange. The pair is
// unordered: (A, B) and (B, A) name the same conversation, and lookups must
// match either column ordering. Rows are immutable once created.
type Conversation struct {
	ID        string    `json:"conversation_id"`
	User1ID   string    `json:"user1_id"`
	User2ID   string    `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Involves reports whether the conversation pairs a and b, in either order.
func (c Conversation) Involves(a, b string) bool {
	return (c.User1ID == a && c.User2ID == b) || (c.User1ID == b && c.User2ID == a)
}

// Peer returns the other participant's id given one participant. Returns ""
// when selfID is not part of the conversation.
func (c Conversation) Peer(selfID string) string {
	switch selfID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	default:
		return ""
	}
}

type conversationRow struct {
	ID        string  `json:"conversation_id"`
	User1ID   string  `json:"user1_id"`
	User2ID   string  `json:"user2_id"`
	CreatedAt *string `json:"created_at"`
}

// DecodeConversation decodes and validates a raw conversations row.
func DecodeConversation(raw json.RawMessage) (Conversation, error) {
	var row conversationRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return Conversation{}, fmt.Errorf("%w: conversation: %v", ErrInvalidRow, err)
	}
	if row.ID == "" {
		return Conversation{}, fmt.Errorf("%w: conversation missing conversation_id", ErrInvalidRow)
	}
	if row.User1ID == "" || row.User2ID == "" {
		return Conversation{}, fmt.Errorf("%w: conversation %s missing a participant", ErrInvalidRow, row.ID)
	}

	c := Conversation{
		ID:      row.ID,
		User1ID: row.User1ID,
		User2ID: row.User2ID,
	}
	var err error
	if c.CreatedAt, err = parseOptionalTime(row.CreatedAt); err != nil {
		return Conversation{}, fmt.Errorf("%w: conversation created_at: %v", ErrInvalidRow, err)
	}
	return c, nil
}
