// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the sign-up and sign-in forms shown while no
// session exists. Sign-up is the default form; sign-in is one keystroke
// away. A successful sign-in ensures the profile row exists and hands the
// session to the app shell via SignedInMsg.
package auth
