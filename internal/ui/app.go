// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea model for the haven TUI.
//
// The root model routes between three pages: the assistant chat, the
// community forum, and the account screen (login or signup when logged
// out). It also subscribes to the identity watcher so a login or
// logout performed by another process updates the running session.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	conv "github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
	chatui "github.com/jeranaias/haven-tui/internal/ui/chat"
	forumui "github.com/jeranaias/haven-tui/internal/ui/forum"
	loginui "github.com/jeranaias/haven-tui/internal/ui/login"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// Page identifies a top-level page.
type Page int

const (
	PageChat Page = iota
	PageForum
	PageAccount
)

// pageCount is the number of cycleable pages.
const pageCount = 3

// IdentityChangedMsg reports that the persisted identity changed,
// locally or in another process. A nil user means logged out.
type IdentityChangedMsg struct {
	User *model.User
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root model.
type App struct {
	theme   *styles.Theme
	store   *identity.Store
	watcher *identity.Watcher
	manager *conv.Manager

	page  Page
	chat  chatui.Model
	forum forumui.Model
	login loginui.Model

	user   *model.User
	width  int
	height int
}

// NewApp assembles the root model. The watcher may be nil when file
// watching could not start; live identity updates are then disabled.
func NewApp(theme *styles.Theme, store *identity.Store, watcher *identity.Watcher,
	manager *conv.Manager, chat chatui.Model, forum forumui.Model, login loginui.Model) App {
	return App{
		theme:   theme,
		store:   store,
		watcher: watcher,
		manager: manager,
		page:    PageChat,
		chat:    chat,
		forum:   forum,
		login:   login,
		user:    store.Current(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.chat.Init(), a.login.Init()}
	if a.watcher != nil {
		cmds = append(cmds, a.waitForIdentityCmd())
	}
	return tea.Batch(cmds...)
}

// waitForIdentityCmd blocks on the watcher channel and re-arms after
// every delivery.
func (a App) waitForIdentityCmd() tea.Cmd {
	events := a.watcher.Events()
	return func() tea.Msg {
		user, ok := <-events
		if !ok {
			return nil
		}
		return IdentityChangedMsg{User: user}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)

		// Reserve two rows for the tab bar and status bar.
		inner := msg
		inner.Height -= 2
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(inner)
		cmds = append(cmds, cmd)
		a.forum, cmd = a.forum.Update(inner)
		cmds = append(cmds, cmd)
		a.login, cmd = a.login.Update(inner)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyCtrlP:
			return a.switchPage(Page((int(a.page) + 1) % pageCount))
		}

	case IdentityChangedMsg:
		a.applyIdentity(msg.User)
		if a.watcher != nil {
			return a, a.waitForIdentityCmd()
		}
		return a, nil

	case loginui.AuthSuccessMsg:
		a.applyIdentity(msg.User)
		a.login, _ = a.login.Update(msg)
		return a.switchPage(PageChat)
	}

	return a.routeToPage(msg)
}

// switchPage activates a page, kicking off its initial load when it
// needs one.
func (a App) switchPage(page Page) (tea.Model, tea.Cmd) {
	a.page = page
	if page == PageForum && !a.forum.Loaded() {
		return a, a.forum.RefreshCmd()
	}
	return a, nil
}

// routeToPage delivers a message to the active page only.
func (a App) routeToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case PageChat:
		a.chat, cmd = a.chat.Update(msg)
	case PageForum:
		a.forum, cmd = a.forum.Update(msg)
	case PageAccount:
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

// applyIdentity swaps the signed-in user. The conversation restarts so
// the greeting matches the new identity; a reset is skipped while a
// send is in flight and the transcript catches up on the next one.
func (a *App) applyIdentity(user *model.User) {
	a.user = user
	a.manager.Reset()
	a.chat, _ = a.chat.Update(chatui.ConversationResetMsg{})
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (a App) View() string {
	var body string
	switch a.page {
	case PageChat:
		body = a.chat.View()
	case PageForum:
		body = a.forum.View()
	case PageAccount:
		body = a.login.View()
	}

	var b strings.Builder
	b.WriteString(a.tabBar())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(a.statusBar())
	return b.String()
}

// tabBar renders the page tabs with the active one highlighted.
func (a App) tabBar() string {
	tabs := []struct {
		page  Page
		label string
	}{
		{PageChat, "Chat"},
		{PageForum, "Community"},
		{PageAccount, "Account"},
	}

	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, a.theme.HeaderBrand.Render(" haven "))
	for _, t := range tabs {
		if t.page == a.page {
			parts = append(parts, a.theme.TabActive.Render(t.label))
		} else {
			parts = append(parts, a.theme.Tab.Render(t.label))
		}
	}
	return strings.Join(parts, "")
}

// statusBar shows the identity and global key hints.
func (a App) statusBar() string {
	var who string
	if a.user != nil {
		who = a.theme.IdentityTag.Render(a.user.Username)
	} else {
		who = a.theme.AnonymousTag.Render("anonymous")
	}

	hints := a.theme.ShortcutKey.Render("ctrl+p") + a.theme.ShortcutDesc.Render(" switch page  ") +
		a.theme.ShortcutKey.Render("ctrl+c") + a.theme.ShortcutDesc.Render(" quit")

	return a.theme.StatusBar.Width(a.width).Render(who + "  " + hints)
}
