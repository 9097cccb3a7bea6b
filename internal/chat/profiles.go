// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/jeranaias/techtalk-tui/internal/backend"
	"github.com/jeranaias/techtalk-tui/internal/model"
)

// TableProfiles is the profiles table name.
const TableProfiles = "profiles"

// =============================================================================
// PROFILE SERVICE
// =============================================================================

// Profiles performs profile row operations: lookup, creation at first
// sign-in, presence flips, and avatar URL updates.
type Profiles struct {
	client *backend.Client
}

// NewProfiles creates the profile service.
func NewProfiles(client *backend.Client) *Profiles {
	return &Profiles{client: client}
}

// Others loads every profile except the caller's own, oldest first by
// created_at. This is the roster bulk load; live feed inserts then prepend
// newer arrivals on top of it.
func (p *Profiles) Others(ctx context.Context, selfID string) ([]model.Profile, error) {
	rows, err := p.client.From(TableProfiles).Select("*").
		Neq("profile_id", selfID).
		OrderAsc("created_at").
		Do(ctx)
	if err != nil {
		return nil, err
	}
	return model.DecodeProfiles(rows)
}

// Get loads one profile by id.
func (p *Profiles) Get(ctx context.Context, id string) (model.Profile, error) {
	rows, err := p.client.From(TableProfiles).Select("*").
		Eq("profile_id", id).
		Limit(1).
		Do(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if len(rows) == 0 {
		return model.Profile{}, &backend.ClientError{Type: backend.ErrTypeRejected, Message: "profile not found"}
	}
	return model.DecodeProfile(rows[0])
}

// Ensure returns the profile for id, creating it on first sign-in. The
// created row starts online; the caller just authenticated.
func (p *Profiles) Ensure(ctx context.Context, id, displayName string) (model.Profile, error) {
	rows, err := p.client.From(TableProfiles).Select("*").
		Eq("profile_id", id).
		Limit(1).
		Do(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if len(rows) > 0 {
		return model.DecodeProfile(rows[0])
	}

	inserted, err := p.client.From(TableProfiles).Insert(ctx, map[string]any{
		"profile_id":   id,
		"display_name": displayName,
		"is_online":    true,
	})
	if err != nil {
		return model.Profile{}, err
	}
	if len(inserted) == 0 {
		return model.Profile{}, &backend.ClientError{Type: backend.ErrTypeInvalidResponse, Message: "insert returned no row"}
	}
	return model.DecodeProfile(inserted[0])
}

// SetOnline marks the profile online.
func (p *Profiles) SetOnline(ctx context.Context, id string) error {
	return p.client.From(TableProfiles).
		Update(map[string]any{"is_online": true}).
		Eq("profile_id", id).
		Do(ctx)
}

// SetOffline marks the profile offline and stamps last_seen with the
// current time, so peers can render "last seen x ago".
func (p *Profiles) SetOffline(ctx context.Context, id string) error {
	return p.client.From(TableProfiles).
		Update(map[string]any{
			"is_online": false,
			"last_seen": time.Now().UTC().Format(time.RFC3339),
		}).
		Eq("profile_id", id).
		Do(ctx)
}

// SetAvatar stores a new avatar URL on the profile.
func (p *Profiles) SetAvatar(ctx context.Context, id, url string) error {
	return p.client.From(TableProfiles).
		Update(map[string]any{"profile_picture": url}).
		Eq("profile_id", id).
		Do(ctx)
}
