// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/haven-tui/internal/model"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// envelope is the uniform response wrapper used by every backend endpoint.
// Data stays raw until the caller knows what shape to expect.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// =============================================================================
// AUTH
// =============================================================================

// loginRequest is the body for POST /login. The email field also
// accepts a bare username; the backend resolves either.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupRequest is the body for POST /signup.
type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// =============================================================================
// CHAT
// =============================================================================

// chatRequest is the body for POST /chat. SessionID is null on the
// first exchange; the server assigns one in the response.
type chatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"sessionId"`
	UserID    string  `json:"userId"`
}

// botMessage is the server-built assistant reply inside a chat response.
type botMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatResult is the decoded payload of a successful chat exchange.
type ChatResult struct {
	SessionID  string
	BotMessage model.ChatMessage
}

// chatData is the wire shape of a chat response payload.
type chatData struct {
	SessionID  string     `json:"sessionId"`
	BotMessage botMessage `json:"botMessage"`
}

// =============================================================================
// FORUM
// =============================================================================

// CreatePostRequest is the body for POST /forum/posts. Tags must
// already be normalized (trimmed, no blanks).
type CreatePostRequest struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	AuthorID       string   `json:"authorId"`
	AuthorUsername string   `json:"authorUsername"`
	Tags           []string `json:"tags"`
}

// CreateReplyRequest is the body for POST /forum/replies.
type CreateReplyRequest struct {
	PostID         string `json:"postId"`
	Content        string `json:"content"`
	AuthorID       string `json:"authorId"`
	AuthorUsername string `json:"authorUsername"`
}

// PostDetail is the decoded payload of GET /forum/posts/{id}: the post
// plus its replies in server order.
type PostDetail struct {
	Post    model.Post    `json:"post"`
	Replies []model.Reply `json:"replies"`
}
