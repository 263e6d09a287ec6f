// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// FORUM TYPES
// =============================================================================

// Post is a forum post. The id, createdAt, isPinned and replyCount
// fields are computed server-side; the client never fills them in
// locally and re-fetches the listing after a create instead.
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"createdAt"`
	IsPinned       bool      `json:"isPinned"`
	ReplyCount     int       `json:"replyCount"`
}

// Reply is one entry in a post's reply sequence. Display order is
// exactly server response order.
type Reply struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PostDraft is the client-side input for creating a post. Tags holds
// the raw comma-separated string as typed; NormalizeTags turns it into
// the list sent to the server.
type PostDraft struct {
	Title   string
	Content string
	Tags    string
}

// Author returns the post author's name, falling back when the server
// sent an empty field.
func (p Post) Author() string {
	if p.AuthorUsername == "" {
		return "Unknown"
	}
	return p.AuthorUsername
}

// Preview returns a truncated excerpt of the post content for listings.
func (p Post) Preview(maxRunes int) string {
	return util.TruncateRunes(util.FirstLine(p.Content), maxRunes)
}

// Author returns the reply author's name with the same fallback as posts.
func (r Reply) Author() string {
	if r.AuthorUsername == "" {
		return "Unknown"
	}
	return r.AuthorUsername
}

// =============================================================================
// TAG NORMALIZATION
// =============================================================================

// NormalizeTags splits a comma-separated tag string, trims each entry,
// and drops blanks and duplicates. The result may be empty. The
// operation is idempotent: normalizing an already-normalized list
// (rejoined with commas) yields the same list.
func NormalizeTags(raw string) []string {
	tags := make([]string, 0)
	seen := make(map[string]bool)
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
