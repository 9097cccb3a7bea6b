// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the TechTalk domain operations on top of the
// backend client: profile lifecycle and presence, conversation resolution,
// message history and sending, and avatar upload.
//
// Services are thin and stateless; each call is a single round of backend
// requests with no retries, and all caching lives in the sync package. Every
// service takes the backend client by handle, so tests swap in a loopback
// server instead of a network.
package chat
