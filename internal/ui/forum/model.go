// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	boards "github.com/jeranaias/haven-tui/internal/forum"
	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// screen selects which forum screen is visible.
type screen int

const (
	screenList screen = iota
	screenDetail
	screenCompose
)

// compose form focus slots.
const (
	composeTitle = iota
	composeContent
	composeTags
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the forum page.
type Model struct {
	theme   *styles.Theme
	listing *boards.Listing
	detail  *boards.Detail
	timeout time.Duration

	screen screen
	cursor int
	loaded bool

	// detail state
	openID   string
	viewport viewport.Model
	reply    textarea.Model
	replying bool

	// compose state
	title        textinput.Model
	content      textarea.Model
	tags         textinput.Model
	composeFocus int
	composeErr   string

	spin    spinner.Model
	busy    bool
	lastErr error

	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool
}

// New creates the forum page.
func New(theme *styles.Theme, listing *boards.Listing, detail *boards.Detail, timeout time.Duration) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Write your post (markdown welcome)..."
	content.CharLimit = 10000

	tags := textinput.New()
	tags.Placeholder = "Tags, comma separated"
	tags.CharLimit = 200

	reply := textarea.New()
	reply.Placeholder = "Write a reply..."
	reply.CharLimit = 5000
	reply.SetHeight(3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	// Markdown for post bodies. A nil renderer falls back to plain
	// text at view time.
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	return Model{
		theme:    theme,
		listing:  listing,
		detail:   detail,
		timeout:  timeout,
		title:    title,
		content:  content,
		tags:     tags,
		reply:    reply,
		spin:     sp,
		renderer: renderer,
	}
}

// Init implements tea.Model. The first refresh happens when the page
// gains focus, via RefreshCmd from the app model.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// RefreshCmd reloads the post listing.
func (m Model) RefreshCmd() tea.Cmd {
	listing, timeout := m.listing, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PostsLoadedMsg{Err: listing.Refresh(ctx)}
	}
}

// openCmd loads one post with its reply thread.
func (m Model) openCmd(postID string) tea.Cmd {
	detail, timeout := m.detail, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PostOpenedMsg{PostID: postID, Err: detail.Load(ctx, postID)}
	}
}

// createCmd submits the compose form.
func (m Model) createCmd(draft model.PostDraft) tea.Cmd {
	listing, timeout := m.listing, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PostCreatedMsg{Err: listing.CreatePost(ctx, draft)}
	}
}

// replyCmd submits the reply box on the detail screen.
func (m Model) replyCmd(postID, content string) tea.Cmd {
	detail, timeout := m.detail, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ReplyPostedMsg{Err: detail.AddReply(ctx, postID, content)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case PostsLoadedMsg:
		m.busy = false
		m.loaded = true
		m.lastErr = msg.Err
		if n := len(m.listing.Posts()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case PostOpenedMsg:
		m.busy = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.openID = msg.PostID
			m.screen = screenDetail
			m.refreshDetailViewport()
		}
		return m, nil

	case PostCreatedMsg:
		m.busy = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.resetCompose()
			m.screen = screenList
			m.loaded = true
		}
		return m, nil

	case ReplyPostedMsg:
		m.busy = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.reply.Reset()
			m.replying = false
			m.refreshDetailViewport()
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenList:
			return m.updateList(msg)
		case screenDetail:
			return m.updateDetail(msg)
		case screenCompose:
			return m.updateCompose(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.listing.Posts())-1 {
			m.cursor++
		}
	case "enter":
		posts := m.listing.Posts()
		if m.cursor < len(posts) && !m.busy {
			m.busy = true
			return m, tea.Batch(m.openCmd(posts[m.cursor].ID), m.spin.Tick)
		}
	case "r":
		if !m.busy {
			m.busy = true
			return m, tea.Batch(m.RefreshCmd(), m.spin.Tick)
		}
	case "n":
		m.screen = screenCompose
		m.composeFocus = composeTitle
		m.composeErr = ""
		m.title.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.replying {
		switch msg.Type {
		case tea.KeyEsc:
			m.replying = false
			m.reply.Blur()
			return m, nil
		case tea.KeyCtrlS:
			content := m.reply.Value()
			if content != "" && !m.busy {
				m.busy = true
				return m, tea.Batch(m.replyCmd(m.openID, content), m.spin.Tick)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.reply, cmd = m.reply.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q", "backspace":
		m.screen = screenList
		return m, nil
	case "a":
		m.replying = true
		return m, m.reply.Focus()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateCompose(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.resetCompose()
		m.screen = screenList
		return m, nil

	case tea.KeyTab:
		return m.cycleCompose(1)

	case tea.KeyShiftTab:
		return m.cycleCompose(-1)

	case tea.KeyCtrlS:
		if m.busy {
			return m, nil
		}
		draft := model.PostDraft{
			Title:   m.title.Value(),
			Content: m.content.Value(),
			Tags:    m.tags.Value(),
		}
		if draft.Title == "" || draft.Content == "" {
			m.composeErr = "Title and content are required"
			return m, nil
		}
		m.composeErr = ""
		m.busy = true
		return m, tea.Batch(m.createCmd(draft), m.spin.Tick)
	}

	var cmd tea.Cmd
	switch m.composeFocus {
	case composeTitle:
		m.title, cmd = m.title.Update(msg)
	case composeContent:
		m.content, cmd = m.content.Update(msg)
	case composeTags:
		m.tags, cmd = m.tags.Update(msg)
	}
	return m, cmd
}

func (m Model) cycleCompose(delta int) (Model, tea.Cmd) {
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()

	m.composeFocus = (m.composeFocus + delta + 3) % 3
	switch m.composeFocus {
	case composeTitle:
		return m, m.title.Focus()
	case composeContent:
		return m, m.content.Focus()
	default:
		return m, m.tags.Focus()
	}
}

// =============================================================================
// STATE HELPERS
// =============================================================================

func (m *Model) layout() {
	vpHeight := m.height - 10
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.title.Width = m.width - 8
	m.tags.Width = m.width - 8
	m.content.SetWidth(m.width - 8)
	m.reply.SetWidth(m.width - 8)
	if m.screen == screenDetail {
		m.refreshDetailViewport()
	}
}

func (m *Model) resetCompose() {
	m.title.Reset()
	m.content.Reset()
	m.tags.Reset()
	m.composeErr = ""
}

// Loaded reports whether the listing finished its first refresh.
func (m Model) Loaded() bool {
	return m.loaded
}
