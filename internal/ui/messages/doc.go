// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package messages provides the signed-in chat view: the roster sidebar,
// the open conversation's timeline and composer, and the avatar overlay.
//
// All state mutation happens on the Bubble Tea update loop. Network work
// runs in commands; each command result carries the conversation generation
// it was issued for, and results from a superseded generation are dropped,
// so switching peers mid-load can never bleed one conversation's messages
// into another.
package messages
