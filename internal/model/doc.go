// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the typed entities of the TechTalk data model:
// profiles, conversations and messages.
//
// The hosted backend is the sole source of truth for all three; this
// package only defines their in-memory shape and the validated decoding
// applied to every row that crosses the fetch/feed boundary. Rows that do
// not decode are rejected by the caller (logged, never trusted).
package model
