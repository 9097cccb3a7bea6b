// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/model"
)

// TableMessages is the messages table name.
const TableMessages = "messages"

// =============================================================================
// MESSAGE SERVICE
// =============================================================================

// Messages loads conversation history and sends new messages.
type Messages struct {
	client *backend.Client
}

// NewMessages creates the message service.
func NewMessages(client *backend.Client) *Messages {
	return &Messages{client: client}
}

// History loads every message in a conversation, oldest first.
func (m *Messages) History(ctx context.Context, conversationID string) ([]model.Message, error) {
	rows, err := m.client.From(TableMessages).Select("*").
		Eq("conversation_id", conversationID).
		OrderAsc("created_at").
		Do(ctx)
	if err != nil {
		return nil, err
	}
	return model.DecodeMessages(rows)
}

// Send stores one message and returns it with the backend-assigned id and
// timestamp. Content is stored verbatim; whitespace trimming is the
// composer's job, before this call.
func (m *Messages) Send(ctx context.Context, conversationID, senderID, content string) (model.Message, error) {
	inserted, err := m.client.From(TableMessages).Insert(ctx, map[string]any{
		"conversation_id": conversationID,
		"sender_id":       senderID,
		"content":         content,
	})
	if err != nil {
		return model.Message{}, err
	}
	if len(inserted) == 0 {
		return model.Message{}, &backend.ClientError{Type: backend.ErrTypeInvalidResponse, Message: "insert returned no row"}
	}
	return model.DecodeMessage(inserted[0])
}
