// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sync holds the in-memory caches the UI renders from: the Roster
// of other users and the message Timeline of the open conversation.
//
// Both caches apply the same inputs from two directions — an initial bulk
// load and a live change feed — and both make the merge idempotent, so the
// inevitable race between "load finished" and "feed event arrived" cannot
// duplicate or lose entries. The caches are plain values owned by the UI
// event loop; they are not safe for concurrent use and do not need to be.
package sync
