// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/haven-tui/internal/api"
	boards "github.com/jeranaias/haven-tui/internal/forum"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

func testModel(t *testing.T) Model {
	t.Helper()
	store := identity.NewStore(filepath.Join(t.TempDir(), "user.json"))
	client := api.NewClient("http://127.0.0.1:1")
	m := New(styles.NewTheme(), boards.NewListing(client, store), boards.NewDetail(client, store), time.Second)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestPostsLoaded_MarksLoaded(t *testing.T) {
	m := testModel(t)
	m.busy = true

	m, _ = m.Update(PostsLoadedMsg{})
	assert.True(t, m.Loaded())
	assert.False(t, m.busy)
	assert.Nil(t, m.lastErr)
}

func TestPostsLoaded_FailureKeepsError(t *testing.T) {
	m := testModel(t)
	loadErr := errors.New("failed to connect to server")

	m, _ = m.Update(PostsLoadedMsg{Err: loadErr})
	assert.Equal(t, loadErr, m.lastErr)
	assert.True(t, m.Loaded(), "a failed refresh still counts as attempted")
}

func TestComposeSubmit_RequiresTitleAndContent(t *testing.T) {
	m := testModel(t)
	m.screen = screenCompose

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, "Title and content are required", m.composeErr)
	assert.False(t, m.busy)
}

func TestPostCreated_ReturnsToListAndClearsForm(t *testing.T) {
	m := testModel(t)
	m.screen = screenCompose
	m.busy = true
	m.title.SetValue("Hello")
	m.content.SetValue("World")

	m, _ = m.Update(PostCreatedMsg{})
	assert.Equal(t, screenList, m.screen)
	assert.Empty(t, m.title.Value())
	assert.Empty(t, m.content.Value())
}

func TestPostCreated_FailureStaysOnCompose(t *testing.T) {
	m := testModel(t)
	m.screen = screenCompose
	m.busy = true
	m.title.SetValue("Hello")

	m, _ = m.Update(PostCreatedMsg{Err: errors.New("posts are locked")})
	assert.Equal(t, screenCompose, m.screen)
	assert.Equal(t, "Hello", m.title.Value(), "a failed publish must not discard the draft")
}

func TestReplyPosted_ClearsReplyBox(t *testing.T) {
	m := testModel(t)
	m.screen = screenDetail
	m.replying = true
	m.busy = true
	m.reply.SetValue("me too")

	m, _ = m.Update(ReplyPostedMsg{})
	assert.False(t, m.replying)
	assert.Empty(t, m.reply.Value())
}
