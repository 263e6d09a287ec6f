// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	conv "github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat page.
type Model struct {
	theme   *styles.Theme
	manager *conv.Manager
	timeout time.Duration

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	sending bool
	lastErr error

	// generation invalidates in-flight completions after a reset
	generation int

	width  int
	height int
	ready  bool
}

// New creates the chat page bound to a conversation manager.
func New(theme *styles.Theme, manager *conv.Manager, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		theme:   theme,
		manager: manager,
		timeout: timeout,
		input:   ti,
		spin:    sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd runs the blocking send off the UI goroutine. The manager
// owns the transcript mutation; the completion message only tells the
// view to re-render.
func (m Model) sendCmd(text string, generation int) tea.Cmd {
	manager, timeout := m.manager, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := manager.Send(ctx, text)
		if errors.Is(err, conv.ErrBlank) || errors.Is(err, conv.ErrBusy) {
			return SendRejectedMsg{Err: err}
		}
		return SendFinishedMsg{Generation: generation, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.sending = true
			m.lastErr = nil
			m.input.Reset()
			cmds = append(cmds, m.sendCmd(text, m.generation), m.spin.Tick)
			// Show the optimistic user bubble on the next frame; the
			// manager appends it before the request goes out.
			m.refreshViewport()
			return m, tea.Batch(cmds...)

		case tea.KeyCtrlL:
			if m.manager.Reset() {
				m.generation++
				m.sending = false
				m.lastErr = nil
				m.refreshViewport()
			}
			return m, nil
		}

	case SendFinishedMsg:
		if msg.Generation != m.generation {
			// Completion from before a reset: the transcript it
			// belongs to is gone.
			return m, nil
		}
		m.sending = false
		m.lastErr = msg.Err
		m.refreshViewport()
		return m, nil

	case SendRejectedMsg:
		m.sending = false
		return m, nil

	case ConversationResetMsg:
		// The transcript was replaced outside this page (identity
		// change); in-flight completions now belong to a dead
		// conversation.
		m.generation++
		m.sending = false
		m.lastErr = nil
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.sending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// layout resizes the viewport to the available space.
func (m *Model) layout() {
	headerHeight := 2
	footerHeight := 4
	vpHeight := m.height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - 6
	m.refreshViewport()
}

// refreshViewport re-renders the transcript and pins the scroll to the
// newest message.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Sending reports whether a send is in flight.
func (m Model) Sending() bool {
	return m.sending
}
