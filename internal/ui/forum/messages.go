// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

// =============================================================================
// LISTING MESSAGES
// =============================================================================

// PostsLoadedMsg signals that a listing refresh finished. On failure
// the listing is already empty; Err carries the cause for display.
type PostsLoadedMsg struct {
	Err error
}

// PostCreatedMsg signals that a create-post round trip finished. The
// listing has been re-fetched when Err is nil.
type PostCreatedMsg struct {
	Err error
}

// =============================================================================
// DETAIL MESSAGES
// =============================================================================

// PostOpenedMsg signals that a detail load finished.
type PostOpenedMsg struct {
	PostID string
	Err    error
}

// ReplyPostedMsg signals that a reply round trip finished. The thread
// has been re-fetched when Err is nil.
type ReplyPostedMsg struct {
	Err error
}
