// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sync

import (
	"strings"

	"github.com/jeranaias/techtalk-tui/internal/model"
)

// =============================================================================
// ROSTER
// =============================================================================

// Roster is the cache of every other user's profile, newest first. The
// owner's own profile never appears: bulk loads exclude it server-side and
// Insert suppresses it locally, because the insert feed has no filter.
type Roster struct {
	selfID   string
	profiles []model.Profile
}

// NewRoster creates an empty roster owned by the given user.
func NewRoster(selfID string) *Roster {
	return &Roster{selfID: selfID}
}

// Replace swaps the full contents with a bulk load result. Rows for the
// owner are dropped rather than trusted to be pre-filtered.
func (r *Roster) Replace(profiles []model.Profile) {
	r.profiles = r.profiles[:0]
	for _, p := range profiles {
		if p.ID == r.selfID {
			continue
		}
		r.profiles = append(r.profiles, p)
	}
}

// Insert prepends a newly created profile. No-op when the profile is the
// owner's or already present, so replaying a feed event after the bulk
// load cannot duplicate an entry.
func (r *Roster) Insert(p model.Profile) {
	if p.ID == r.selfID {
		return
	}
	for _, existing := range r.profiles {
		if existing.ID == p.ID {
			return
		}
	}
	r.profiles = append([]model.Profile{p}, r.profiles...)
}

// Update replaces the stored profile with the same id, keeping position.
// Unknown ids are ignored: an update for a profile never loaded carries no
// renderable state transition.
func (r *Roster) Update(p model.Profile) {
	for i, existing := range r.profiles {
		if existing.ID == p.ID {
			r.profiles[i] = p
			return
		}
	}
}

// Remove deletes the profile with the given id, if present.
func (r *Roster) Remove(id string) {
	for i, existing := range r.profiles {
		if existing.ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			return
		}
	}
}

// Get returns the profile with the given id.
func (r *Roster) Get(id string) (model.Profile, bool) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return model.Profile{}, false
}

// All returns the profiles in roster order. The slice is shared; callers
// must not mutate it.
func (r *Roster) All() []model.Profile {
	return r.profiles
}

// Len returns the number of profiles.
func (r *Roster) Len() int {
	return len(r.profiles)
}

// Filter returns the profiles whose display name contains query,
// case-insensitively. An empty query returns everything.
func (r *Roster) Filter(query string) []model.Profile {
	if query == "" {
		return r.profiles
	}
	q := strings.ToLower(query)
	var out []model.Profile
	for _, p := range r.profiles {
		if strings.Contains(strings.ToLower(p.DisplayName), q) {
			out = append(out, p)
		}
	}
	return out
}
