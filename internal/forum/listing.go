// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
)

// Error variables for local validation and concurrency preconditions.
var (
	ErrIncompletePost = errors.New("title and content are required")
	ErrEmptyReply     = errors.New("reply content is required")
	ErrPending        = errors.New("another request is still pending")
)

// Listing owns the post collection shown on the forum page.
type Listing struct {
	client *api.Client
	who    identity.Reader

	mu    sync.Mutex
	posts []model.Post
	busy  bool
}

// NewListing creates an empty listing.
func NewListing(client *api.Client, who identity.Reader) *Listing {
	return &Listing{client: client, who: who}
}

// Posts returns a snapshot of the collection in server order.
func (l *Listing) Posts() []model.Post {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Post, len(l.posts))
	copy(out, l.posts)
	return out
}

// Busy reports whether a create is in flight.
func (l *Listing) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// Refresh replaces the collection wholesale with the server's listing.
// Any failure resets to an empty collection and returns the error; the
// view never shows a stale or partial listing silently.
func (l *Listing) Refresh(ctx context.Context) error {
	posts, err := l.client.ListPosts(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.posts = nil
		return err
	}
	l.posts = posts
	return nil
}

// CreatePost validates the draft locally, submits it, and re-fetches
// the listing so server-assigned fields (ID, createdAt, pin state) are
// authoritative. On failure the server's message comes back verbatim
// and the collection is untouched.
func (l *Listing) CreatePost(ctx context.Context, draft model.PostDraft) error {
	title := strings.TrimSpace(draft.Title)
	content := strings.TrimSpace(draft.Content)
	if title == "" || content == "" {
		return ErrIncompletePost
	}

	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return ErrPending
	}
	l.busy = true
	l.mu.Unlock()

	user := l.who.Current()
	err := l.client.CreatePost(ctx, api.CreatePostRequest{
		Title:          title,
		Content:        content,
		AuthorID:       user.AuthorID(),
		AuthorUsername: user.AuthorName(),
		Tags:           model.NormalizeTags(draft.Tags),
	})

	l.mu.Lock()
	l.busy = false
	l.mu.Unlock()

	if err != nil {
		return err
	}
	return l.Refresh(ctx)
}
