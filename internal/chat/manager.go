// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
)

// Error variables for send preconditions. Both are no-ops at the UI
// layer: a blank send does nothing and a send while busy is dropped,
// not queued.
var (
	ErrBlank = errors.New("message is empty")
	ErrBusy  = errors.New("a send is already in flight")
)

// Manager is the conversation state machine. Safe for concurrent use;
// the busy flag keeps at most one send in flight.
type Manager struct {
	client *api.Client
	who    identity.Reader

	mu        sync.Mutex
	sessionID string
	messages  []model.ChatMessage
	busy      bool
}

// NewManager creates an unbound conversation seeded with the welcome
// message for the current identity. The welcome message is synthetic
// and never sent to the server.
func NewManager(client *api.Client, who identity.Reader) *Manager {
	m := &Manager{client: client, who: who}
	m.messages = []model.ChatMessage{model.NewWelcomeMessage(who.Current())}
	return m
}

// Messages returns a snapshot of the log in append order.
func (m *Manager) Messages() []model.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// SessionID returns the bound session identifier, or "" while unbound.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Bound reports whether the conversation has a server session.
func (m *Manager) Bound() bool {
	return m.SessionID() != ""
}

// Busy reports whether a send is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Reset discards the conversation and starts a new unbound one, seeded
// with a fresh welcome message. Refused while a send is in flight; the
// return value reports whether the reset happened.
func (m *Manager) Reset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return false
	}
	m.sessionID = ""
	m.messages = []model.ChatMessage{model.NewWelcomeMessage(m.who.Current())}
	return true
}

// Send performs one exchange: append the user's message optimistically,
// issue exactly one request, then append exactly one bot message (the
// server's on success, a synthetic failure notice otherwise).
//
// Preconditions: text non-blank after trimming (ErrBlank) and no send
// already in flight (ErrBusy). On ErrBusy nothing is appended; the
// caller drops the input rather than queueing it.
func (m *Manager) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrBlank
	}

	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return ErrBusy
	}
	m.busy = true
	m.messages = append(m.messages, model.NewUserMessage(text))
	sessionID := m.sessionID
	m.mu.Unlock()

	result, err := m.client.Chat(ctx, text, sessionID, m.who.Current().AuthorID())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false

	if err != nil {
		// Transport, application and shape failures all surface the
		// same way: a visible bot message. Session state is untouched
		// and the user's message stays in the log.
		m.messages = append(m.messages, model.NewFailureMessage())
		return err
	}

	// First successful response wins the session binding; later
	// responses never overwrite it.
	if m.sessionID == "" {
		m.sessionID = result.SessionID
	}
	m.messages = append(m.messages, result.BotMessage)
	return nil
}
