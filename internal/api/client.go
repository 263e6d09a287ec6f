// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeranaias/haven-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is where a locally run backend listens.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the default timeout for API requests. The chat
	// endpoint waits on AI generation, so this is generous.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps response bodies to prevent memory exhaustion
	// from a misbehaving server.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// One shared transport serves all clients in the process.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// Error variables for common client errors.
var (
	// ErrShape indicates the response body did not match the expected
	// contract (not the envelope, or data of the wrong type). Callers
	// treat it as a safe-fallback condition, never a crash.
	ErrShape = errors.New("unexpected response shape")

	// ErrUnreachable indicates the request never completed.
	ErrUnreachable = errors.New("failed to connect to server")
)

// APIError is an application-level failure: the request completed but
// the server answered success:false. Message is reported to the user
// verbatim.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the haven backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for the given base URL. An empty URL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
		userAgent: "haven/0.1.0",
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// logRequest logs an API request without bodies or headers; they may
// contain credentials or message content.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// do issues one request and decodes the envelope. The envelope is
// decoded regardless of HTTP status: the backend reports failures as
// success:false rather than bare status codes. No automatic retries.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}

	if !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

// decodeData unmarshals the envelope payload into target, mapping any
// mismatch to ErrShape.
func decodeData(env *envelope, target any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: missing data", ErrShape)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	return nil
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a User via POST /login. The email
// argument may also be a bare username.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signup creates an account via POST /signup and returns the new User.
func (c *Client) Signup(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/signup", signupRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeData(env, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckUsername asks whether a username is still available. A nil
// error means available; an *APIError carries the server's explanation.
// The answer is advisory only: signup submits regardless, and the
// backend enforces uniqueness at that point.
func (c *Client) CheckUsername(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodGet, "/checkUsername?username="+url.QueryEscape(username), nil)
	return err
}

// CheckEmail asks whether an email is still available. Same advisory
// semantics as CheckUsername.
func (c *Client) CheckEmail(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodGet, "/checkEmail?email="+url.QueryEscape(email), nil)
	return err
}

// =============================================================================
// CHAT ENDPOINT
// =============================================================================

// Chat sends one user message via POST /chat. sessionID is empty for
// the first exchange of a conversation; the server's assignment comes
// back in the result.
func (c *Client) Chat(ctx context.Context, message, sessionID, userID string) (*ChatResult, error) {
	req := chatRequest{Message: message, UserID: userID}
	if sessionID != "" {
		req.SessionID = &sessionID
	}

	env, err := c.do(ctx, http.MethodPost, "/chat", req)
	if err != nil {
		return nil, err
	}

	var data chatData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	if data.SessionID == "" || data.BotMessage.Text == "" {
		return nil, fmt.Errorf("%w: incomplete chat payload", ErrShape)
	}

	return &ChatResult{
		SessionID:  data.SessionID,
		BotMessage: model.NewBotMessage(data.BotMessage.ID, data.BotMessage.Text, data.BotMessage.Timestamp),
	}, nil
}

// =============================================================================
// FORUM ENDPOINTS
// =============================================================================

// ListPosts fetches the full post collection via GET /forum/posts.
// Server ordering is preserved exactly.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	env, err := c.do(ctx, http.MethodGet, "/forum/posts", nil)
	if err != nil {
		return nil, err
	}

	var posts []model.Post
	if err := decodeData(env, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits a new post via POST /forum/posts. The response
// payload is ignored; callers re-fetch the listing for server-assigned
// fields.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/forum/posts", req)
	return err
}

// GetPost fetches one post plus its replies via GET /forum/posts/{id}.
// The ID is opaque; no client-side validation of its shape.
func (c *Client) GetPost(ctx context.Context, postID string) (*PostDetail, error) {
	env, err := c.do(ctx, http.MethodGet, "/forum/posts/"+url.PathEscape(postID), nil)
	if err != nil {
		return nil, err
	}

	var detail PostDetail
	if err := decodeData(env, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateReply submits a reply via POST /forum/replies. As with posts,
// the caller re-fetches the detail afterwards.
func (c *Client) CreateReply(ctx context.Context, req CreateReplyRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/forum/replies", req)
	return err
}
