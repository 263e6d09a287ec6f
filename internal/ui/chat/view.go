// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	))
	return b.String()
}

// statusLine shows the spinner while a send is in flight, otherwise a
// transport error or the key hints.
func (m Model) statusLine() string {
	switch {
	case m.sending:
		return m.spin.View() + m.theme.ThinkingText.Render(" Thinking...")
	case m.lastErr != nil:
		return styles.RenderError(m.lastErr.Error())
	default:
		return m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" send  ") +
			m.theme.ShortcutKey.Render("ctrl+l") + m.theme.ShortcutDesc.Render(" clear")
	}
}

// renderTranscript renders every message as a bubble, newest last.
func (m Model) renderTranscript() string {
	msgs := m.manager.Messages()
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n")
}

// renderMessage picks the bubble style for one message.
func (m Model) renderMessage(msg model.ChatMessage) string {
	maxWidth := m.width * 3 / 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	label := m.theme.SenderLabel.Render(msg.Sender.DisplayName()) +
		" " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	var bubble lipgloss.Style
	var align lipgloss.Position
	switch {
	case msg.Sender == model.SenderUser:
		bubble = m.theme.UserBubble
		align = lipgloss.Right
	case msg.Failed:
		bubble = m.theme.FailedBubble
		align = lipgloss.Left
	default:
		bubble = m.theme.BotBubble
		align = lipgloss.Left
	}

	body := bubble.MaxWidth(maxWidth).Render(msg.Text)
	block := lipgloss.JoinVertical(align, label, body)
	return lipgloss.PlaceHorizontal(m.width, align, block)
}
