// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the typed entities of the TechTalk data model.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRow is wrapped by every decode failure in this package.
var ErrInvalidRow = errors.New("invalid row")

// =============================================================================
// PROFILE TYPE
// =============================================================================

// Profile is the persisted identity and presence record for a user. The
// profile id matches the authentication identity. Profiles are created once
// at first sign-in and mutated only by presence and avatar updates.
type Profile struct {
	ID             string    `json:"profile_id"`
	DisplayName    string    `json:"display_name"`
	IsOnline       bool      `json:"is_online"`
	LastSeen       time.Time `json:"last_seen"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}

// profileRow is the wire shape of a profiles row. Timestamps arrive as
// strings in one of a few Postgres flavors and profile_picture is nullable.
type profileRow struct {
	ID             string  `json:"profile_id"`
	DisplayName    string  `json:"display_name"`
	IsOnline       bool    `json:"is_online"`
	LastSeen       *string `json:"last_seen"`
	ProfilePicture *string `json:"profile_picture"`
	CreatedAt      *string `json:"created_at"`
}

// DecodeProfile decodes and validates a raw profiles row.
func DecodeProfile(raw json.RawMessage) (Profile, error) {
	var row profileRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return Profile{}, fmt.Errorf("%w: profile: %v", ErrInvalidRow, err)
	}
	if row.ID == "" {
		return Profile{}, fmt.Errorf("%w: profile missing profile_id", ErrInvalidRow)
	}

	p := Profile{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		IsOnline:    row.IsOnline,
	}
	if row.ProfilePicture != nil {
		p.ProfilePicture = *row.ProfilePicture
	}

	var err error
	if p.LastSeen, err = parseOptionalTime(row.LastSeen); err != nil {
		return Profile{}, fmt.Errorf("%w: profile last_seen: %v", ErrInvalidRow, err)
	}
	if p.CreatedAt, err = parseOptionalTime(row.CreatedAt); err != nil {
		return Profile{}, fmt.Errorf("%w: profile created_at: %v", ErrInvalidRow, err)
	}
	return p, nil
}

// DecodeProfiles decodes a batch of raw rows, failing on the first bad one.
func DecodeProfiles(raws []json.RawMessage) ([]Profile, error) {
	out := make([]Profile, 0, len(raws))
	for _, raw := range raws {
		p, err := DecodeProfile(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

// timestampLayouts covers the formats Postgres emits depending on column
// type: timestamptz with offset, with Z, and naive timestamp (taken as UTC).
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a backend timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseOptionalTime parses a nullable timestamp field; nil and empty both
// decode to the zero time.
func parseOptionalTime(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	return ParseTimestamp(*s)
}
