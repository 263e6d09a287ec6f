// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity persists the logged-in user between runs.
//
// The store holds one JSON file (user.json under the state dir) and an
// in-memory copy. It is the sole source of truth for "who is logged
// in"; the chat and forum managers consult it but never mutate it.
// Persistence failures degrade to the logged-out state rather than
// erroring: a client that cannot read its saved identity behaves
// exactly like one that never had it.
package identity
