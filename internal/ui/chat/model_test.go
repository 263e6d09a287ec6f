// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/haven-tui/internal/api"
	conv "github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

func testModel(t *testing.T) Model {
	t.Helper()
	store := identity.NewStore(filepath.Join(t.TempDir(), "user.json"))
	manager := conv.NewManager(api.NewClient("http://127.0.0.1:1"), store)
	m := New(styles.NewTheme(), manager, time.Second)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestSendFinished_ClearsSendingState(t *testing.T) {
	m := testModel(t)
	m.sending = true

	m, _ = m.Update(SendFinishedMsg{Generation: m.generation, Err: nil})
	assert.False(t, m.Sending())
	assert.Nil(t, m.lastErr)
}

func TestSendFinished_StaleGenerationDropped(t *testing.T) {
	m := testModel(t)
	m.sending = true
	stale := m.generation

	// A reset moved the conversation on; the old completion must not
	// flip state that belongs to the new transcript.
	m, _ = m.Update(ConversationResetMsg{})
	require.NotEqual(t, stale, m.generation)

	m.sending = true
	m, _ = m.Update(SendFinishedMsg{Generation: stale, Err: errors.New("late")})
	assert.True(t, m.sending, "stale completion must be ignored")
	assert.Nil(t, m.lastErr)
}

func TestSendFinished_KeepsErrorForStatusLine(t *testing.T) {
	m := testModel(t)
	m.sending = true

	sendErr := errors.New("failed to connect to server")
	m, _ = m.Update(SendFinishedMsg{Generation: m.generation, Err: sendErr})
	assert.False(t, m.sending)
	assert.Equal(t, sendErr, m.lastErr)
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	m := testModel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.sending)
}

func TestEnterWhileSendingIsDropped(t *testing.T) {
	m := testModel(t)
	m.sending = true
	m.input.SetValue("second message")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "concurrent send must be dropped, not queued")
	assert.Equal(t, "second message", m.input.Value(), "input stays for the user to resend")
}

func TestResetBumpsGeneration(t *testing.T) {
	m := testModel(t)
	before := m.generation

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, before+1, m.generation)
}
