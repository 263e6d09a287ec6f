// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/haven-tui/internal/api"
)

// checkLimit throttles per-field availability probes; leaving a field
// and returning to it repeatedly must not hammer the backend.
var checkLimit = rate.Every(2 * time.Second)

// AvailabilityChecker runs the advisory pre-checks fired when the
// username or email field loses focus. Results are hints only: the
// signup submit goes through regardless, and the backend's uniqueness
// check at that point is authoritative.
type AvailabilityChecker struct {
	client        *api.Client
	usernameLimit *rate.Limiter
	emailLimit    *rate.Limiter
}

// NewAvailabilityChecker creates a checker with per-field throttling.
func NewAvailabilityChecker(client *api.Client) *AvailabilityChecker {
	return &AvailabilityChecker{
		client:        client,
		usernameLimit: rate.NewLimiter(checkLimit, 1),
		emailLimit:    rate.NewLimiter(checkLimit, 1),
	}
}

// CheckUsername probes username availability. It returns the server's
// objection verbatim when the name is taken, and ok=false when no
// check ran (blank input, throttled, or the backend unreachable —
// transport problems never block typing in a form).
func (c *AvailabilityChecker) CheckUsername(ctx context.Context, username string) (warning string, ok bool) {
	if strings.TrimSpace(username) == "" {
		return "", false
	}
	if !c.usernameLimit.Allow() {
		return "", false
	}

	err := c.client.CheckUsername(ctx, username)
	if err == nil {
		return "", true
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

// CheckEmail probes email availability. Values that would fail local
// validation anyway are not sent.
func (c *AvailabilityChecker) CheckEmail(ctx context.Context, email string) (warning string, ok bool) {
	if !LooksLikeEmail(email) {
		return "", false
	}
	if !c.emailLimit.Allow() {
		return "", false
	}

	err := c.client.CheckEmail(ctx, email)
	if err == nil {
		return "", true
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}
