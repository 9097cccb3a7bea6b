// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the client for the hosted TechTalk backend:
// a managed-Postgres platform exposing auth, row-level CRUD over HTTP,
// object storage, and a change-feed subscription primitive over database
// tables (a Supabase-shaped API surface).
//
// The client is an explicitly constructed handle — no package-level
// singleton, no import-time side effects — passed to every service and
// view that needs it. Four sub-surfaces:
//
//   - Auth: sign-up/sign-in/sign-out and session state (auth.go)
//   - Rows: PostgREST-style table CRUD with filter builders (rest.go)
//   - Feed: per-table change subscriptions over websocket (realtime.go)
//   - Storage: object upload and public URL issuance (storage.go)
//
// Row payloads cross this boundary as raw JSON; typed, validated decoding
// belongs to the model package. No call in this package retries on failure.
package backend
