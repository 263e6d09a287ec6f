// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"context"
	"strings"
	"sync"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
)

// Detail owns one post and its server-ordered reply sequence.
type Detail struct {
	client *api.Client
	who    identity.Reader

	mu      sync.Mutex
	post    *model.Post
	replies []model.Reply
	busy    bool
}

// NewDetail creates an empty detail view.
func NewDetail(client *api.Client, who identity.Reader) *Detail {
	return &Detail{client: client, who: who}
}

// Post returns the loaded post, or nil before a successful Load.
func (d *Detail) Post() *model.Post {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.post == nil {
		return nil
	}
	p := *d.post
	return &p
}

// Replies returns a snapshot of the replies in server order. The
// client never sorts or deduplicates them.
func (d *Detail) Replies() []model.Reply {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Reply, len(d.replies))
	copy(out, d.replies)
	return out
}

// Busy reports whether a reply submission is in flight.
func (d *Detail) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Load fetches the post and its replies. The ID is opaque; no local
// validation of its shape. On failure local state is cleared and the
// caller is expected to navigate away — there is no meaningful partial
// detail view.
func (d *Detail) Load(ctx context.Context, postID string) error {
	detail, err := d.client.GetPost(ctx, postID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.post = nil
		d.replies = nil
		return err
	}
	d.post = &detail.Post
	d.replies = detail.Replies
	return nil
}

// AddReply submits a reply and re-loads the post so the reply count
// and ordering stay server-authoritative. On failure the local replies
// are unchanged and the server's message comes back verbatim.
func (d *Detail) AddReply(ctx context.Context, postID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyReply
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return ErrPending
	}
	d.busy = true
	d.mu.Unlock()

	user := d.who.Current()
	err := d.client.CreateReply(ctx, api.CreateReplyRequest{
		PostID:         postID,
		Content:        content,
		AuthorID:       user.AuthorID(),
		AuthorUsername: user.AuthorName(),
	})

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	if err != nil {
		return err
	}
	return d.Load(ctx, postID)
}
