// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the typed entities of the TechTalk data model.
package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// =============================================================================
// PROFILE DECODE TESTS
// =============================================================================

func TestDecodeProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"profile_id": "u-1",
		"display_name": "Alice",
		"is_online": true,
		"last_seen": "2025-06-01T12:00:00+00:00",
		"profile_picture": null,
		"created_at": "2025-05-01T08:30:00Z"
	}`)

	p, err := DecodeProfile(raw)
	if err != nil {
		t.Fatalf("DecodeProfile() error = %v", err)
	}
	if p.ID != "u-1" || p.DisplayName != "Alice" || !p.IsOnline {
		t.Errorf("decoded profile = %+v", p)
	}
	if p.ProfilePicture != "" {
		t.Errorf("null profile_picture should decode empty, got %q", p.ProfilePicture)
	}
	if p.LastSeen.IsZero() || p.CreatedAt.IsZero() {
		t.Error("timestamps should be parsed")
	}
}

func TestDecodeProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing id", `{"display_name": "Bob"}`},
		{"not an object", `[1, 2]`},
		{"bad timestamp", `{"profile_id": "u-1", "last_seen": "yesterday"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeProfile(json.RawMessage(tc.raw))
			if err == nil {
				t.Fatal("DecodeProfile() should reject malformed row")
			}
			if !errors.Is(err, ErrInvalidRow) {
				t.Errorf("error should wrap ErrInvalidRow, got %v", err)
			}
		})
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_Involves(t *testing.T) {
	c := Conversation{ID: "c-1", User1ID: "a", User2ID: "b"}

	if !c.Involves("a", "b") {
		t.Error("Involves(a, b) should be true")
	}
	if !c.Involves("b", "a") {
		t.Error("Involves(b, a) should be true: the pair is unordered")
	}
	if c.Involves("a", "c") {
		t.Error("Involves(a, c) should be false")
	}
}

func TestConversation_Peer(t *testing.T) {
	c := Conversation{ID: "c-1", User1ID: "a", User2ID: "b"}

	if got := c.Peer("a"); got != "b" {
		t.Errorf("Peer(a) = %q, want b", got)
	}
	if got := c.Peer("b"); got != "a" {
		t.Errorf("Peer(b) = %q, want a", got)
	}
	if got := c.Peer("x"); got != "" {
		t.Errorf("Peer(x) = %q, want empty", got)
	}
}

func TestDecodeConversation_Invalid(t *testing.T) {
	_, err := DecodeConversation(json.RawMessage(`{"conversation_id": "c-1", "user1_id": "a"}`))
	if !errors.Is(err, ErrInvalidRow) {
		t.Errorf("missing participant should wrap ErrInvalidRow, got %v", err)
	}
}

// =============================================================================
// MESSAGE DECODE TESTS
// =============================================================================

func TestDecodeMessage(t *testing.T) {
	raw := json.RawMessage(`{
		"message_id": "m-1",
		"conversation_id": "c-1",
		"sender_id": "u-1",
		"content": "hey",
		"created_at": "2025-06-01T12:00:00.123456+00:00"
	}`)

	m, err := DecodeMessage(raw)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if m.ID != "m-1" || m.ConversationID != "c-1" || m.Content != "hey" {
		t.Errorf("decoded message = %+v", m)
	}
	if !m.SentBy("u-1") || m.SentBy("u-2") {
		t.Error("SentBy() mismatch")
	}
}

func TestDecodeMessages_FailsOnFirstBadRow(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"message_id": "m-1", "conversation_id": "c-1"}`),
		json.RawMessage(`{"content": "no id"}`),
	}
	if _, err := DecodeMessages(raws); err == nil {
		t.Error("DecodeMessages() should fail on a row without an id")
	}
}

// =============================================================================
// TIMESTAMP TESTS
// =============================================================================

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 zulu", "2025-06-01T12:00:00Z", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"offset", "2025-06-01T14:00:00+02:00", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"fractional", "2025-06-01T12:00:00.500000Z", time.Date(2025, 6, 1, 12, 0, 0, 500000000, time.UTC)},
		{"naive", "2025-06-01T12:00:00.000001", time.Date(2025, 6, 1, 12, 0, 0, 1000, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	if _, err := ParseTimestamp("last tuesday"); err == nil {
		t.Error("garbage timestamp should not parse")
	}
}
