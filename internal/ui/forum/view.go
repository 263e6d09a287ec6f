// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package forum

import (
	"fmt"
	"strings"

	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
	"github.com/jeranaias/haven-tui/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case screenDetail:
		return m.viewDetail()
	case screenCompose:
		return m.viewCompose()
	default:
		return m.viewList()
	}
}

// =============================================================================
// POST LIST
// =============================================================================

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.theme.PostTitle.Render("Community"))
	b.WriteString("\n\n")

	posts := m.listing.Posts()
	switch {
	case m.busy && !m.loaded:
		b.WriteString(m.spin.View() + m.theme.ThinkingText.Render(" Loading posts..."))
		b.WriteString("\n")
	case len(posts) == 0:
		b.WriteString(m.theme.PostMeta.Render("No posts yet. Press n to start a discussion."))
		b.WriteString("\n")
	default:
		for i, p := range posts {
			b.WriteString(m.renderListItem(p, i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.RenderError(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" open  ") +
		m.theme.ShortcutKey.Render("n") + m.theme.ShortcutDesc.Render(" new post  ") +
		m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" refresh"))

	return m.theme.PostList.Render(b.String())
}

func (m Model) renderListItem(p model.Post, selected bool) string {
	title := p.Title
	if p.IsPinned {
		title = m.theme.PinBadge.Render("PIN ") + title
	}

	meta := fmt.Sprintf("%s - %s - %d replies", p.Author(), p.CreatedAt.Format("Jan 2"), p.ReplyCount)
	line := title + "\n" + m.theme.PostMeta.Render(meta) + m.renderTags(p.Tags)

	if selected {
		return m.theme.PostItemSelected.Width(m.width - 4).Render(line)
	}
	return m.theme.PostItem.Width(m.width - 4).Render(line)
}

func (m Model) renderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		rendered = append(rendered, m.theme.TagBadge.Render(tag))
	}
	return " " + strings.Join(rendered, " ")
}

// =============================================================================
// POST DETAIL
// =============================================================================

func (m Model) viewDetail() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.replying {
		b.WriteString(m.reply.View())
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("ctrl+s") + m.theme.ShortcutDesc.Render(" post reply  ") +
			m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" cancel"))
	} else {
		hints := m.theme.ShortcutKey.Render("a") + m.theme.ShortcutDesc.Render(" reply  ") +
			m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" back")
		if m.busy {
			hints = m.spin.View() + m.theme.ThinkingText.Render(" Working...")
		}
		b.WriteString(hints)
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(styles.RenderError(m.lastErr.Error()))
	}

	return b.String()
}

// refreshDetailViewport rebuilds the detail transcript: post header,
// markdown body, then the reply thread in order.
func (m *Model) refreshDetailViewport() {
	if !m.ready {
		return
	}

	post := m.detail.Post()
	if post == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	title := post.Title
	if post.IsPinned {
		title = m.theme.PinBadge.Render("PIN ") + title
	}
	b.WriteString(m.theme.PostTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.theme.PostMeta.Render(
		fmt.Sprintf("%s - %s", post.Author(), post.CreatedAt.Format("Jan 2 15:04"))))
	b.WriteString(m.renderTags(post.Tags))
	b.WriteString("\n\n")
	b.WriteString(m.renderMarkdown(post.Content))
	b.WriteString("\n")

	replies := m.detail.Replies()
	b.WriteString(m.theme.PostMeta.Render(fmt.Sprintf("%d replies", len(replies))))
	b.WriteString("\n\n")
	for _, r := range replies {
		header := m.theme.ReplyAuthor.Render(r.Author()) + " " +
			m.theme.Timestamp.Render(r.CreatedAt.Format("Jan 2 15:04"))
		b.WriteString(m.theme.ReplyBox.Width(m.width - 4).Render(header + "\n" + r.Content))
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

// renderMarkdown renders a post body through glamour, falling back to
// the raw text when the renderer is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// =============================================================================
// COMPOSE FORM
// =============================================================================

func (m Model) viewCompose() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render("New post"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.FormLabel.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(m.tags.View())
	b.WriteString("\n\n")

	if m.composeErr != "" {
		b.WriteString(m.theme.FieldError.Render(m.composeErr))
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString(styles.RenderError(util.FirstLine(m.lastErr.Error())))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spin.View() + m.theme.ThinkingText.Render(" Posting..."))
	} else {
		b.WriteString(m.theme.ShortcutKey.Render("ctrl+s") + m.theme.ShortcutDesc.Render(" publish  ") +
			m.theme.ShortcutKey.Render("tab") + m.theme.ShortcutDesc.Render(" next field  ") +
			m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" discard"))
	}

	return m.theme.FormBox.Render(b.String())
}
