// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forum keeps the post listing and the post detail view in
// sync with the backend.
//
// Both managers follow the same write-through discipline: a create
// never splices the result into local state, it re-fetches instead, so
// server-computed fields (IDs, timestamps, pinning, reply counts)
// can't drift. Refreshes replace state wholesale; a failed refresh
// leaves an empty collection and a reported error, never a stale or
// partial one.
package forum
