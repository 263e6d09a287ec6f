// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the haven client.
//
// All entities here are owned by the backend; the client holds transient
// copies. The one exception is User, which the identity store persists
// locally between runs.
//
// # Key Types
//
//   - User: the authenticated account, or nil when logged out
//   - ChatMessage: one entry in the append-only chat log
//   - Post: a forum post as returned by the listing or detail endpoint
//   - Reply: one reply in a post's server-ordered reply sequence
package model
