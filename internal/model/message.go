// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage is a single entry in a conversation's append-only log.
// Messages are immutable once created. User message IDs are generated
// client-side; bot message IDs are assigned by the server.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Failed marks a synthetic bot message that reports a failed send.
	// It only styles the message; nothing is rolled back or retried.
	Failed bool `json:"-"`
}

// NewUserMessage creates a user-authored message with a client-generated ID.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now(),
	}
}

// NewBotMessage creates a bot message from server-supplied fields.
func NewBotMessage(id, text string, timestamp time.Time) ChatMessage {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return ChatMessage{
		ID:        id,
		Text:      text,
		Sender:    SenderBot,
		Timestamp: timestamp,
	}
}

// NewWelcomeMessage creates the synthetic greeting that seeds every
// conversation. It is never sent to the server.
func NewWelcomeMessage(user *User) ChatMessage {
	greeting := "Hello! I'm your AI assistant. How can I help you today?"
	if user != nil && user.Username != "" {
		greeting = "Hello " + user.Username + "! I'm your AI assistant. How can I help you today?"
	}
	return ChatMessage{
		ID:        "welcome",
		Text:      greeting,
		Sender:    SenderBot,
		Timestamp: time.Now(),
	}
}

// NewFailureMessage creates the synthetic bot message appended when a
// send fails. The user's original message stays in the log unchanged.
func NewFailureMessage() ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Text:      "Sorry, I encountered an error. Please try again.",
		Sender:    SenderBot,
		Timestamp: time.Now(),
		Failed:    true,
	}
}

// IsUser reports whether the message was authored by the user.
func (m ChatMessage) IsUser() bool {
	return m.Sender == SenderUser
}
