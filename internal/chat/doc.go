// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the client side of a conversation: the append-only
// message log and the server-assigned session identifier.
//
// A conversation starts unbound (no session ID) and binds to the ID
// returned by the first successful exchange; the binding is never
// changed afterwards. Sends are serialized by a busy flag, so log
// order always equals request order. A failed send leaves the user's
// message in place and appends a synthetic bot message instead of
// rolling back; nothing is retried automatically.
package chat
