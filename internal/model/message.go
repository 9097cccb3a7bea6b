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
// MESSAGE TYPE
// =============================================================================

// Message is a single text message in a conversation. Messages are
// append-only: never updated or deleted by this client. Display order is
// created_at ascending.
type Message struct {
	ID             string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// SentBy reports whether the message was sent by the given profile id.
func (m Message) SentBy(profileID string) bool {
	return m.SenderID == profileID
}

type messageRow struct {
	ID             string  `json:"message_id"`
	ConversationID string  `json:"conversation_id"`
	SenderID       string  `json:"sender_id"`
	Content        string  `json:"content"`
	CreatedAt      *string `json:"created_at"`
}

// DecodeMessage decodes and validates a raw messages row.
func DecodeMessage(raw json.RawMessage) (Message, error) {
	var row messageRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return Message{}, fmt.Errorf("%w: message: %v", ErrInvalidRow, err)
	}
	if row.ID == "" {
		return Message{}, fmt.Errorf("%w: message missing message_id", ErrInvalidRow)
	}
	if row.ConversationID == "" {
		return Message{}, fmt.Errorf("%w: message %s missing conversation_id", ErrInvalidRow, row.ID)
	}

	m := Message{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		SenderID:       row.SenderID,
		Content:        row.Content,
	}
	var err error
	if m.CreatedAt, err = parseOptionalTime(row.CreatedAt); err != nil {
		return Message{}, fmt.Errorf("%w: message created_at: %v", ErrInvalidRow, err)
	}
	return m, nil
}

// DecodeMessages decodes a batch of raw rows, failing on the first bad one.
func DecodeMessages(raws []json.RawMessage) ([]Message, error) {
	out := make([]Message, 0, len(raws))
	for _, raw := range raws {
		m, err := DecodeMessage(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
