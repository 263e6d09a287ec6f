// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/haven-tui/internal/api"
)

// =============================================================================
// LOGIN VALIDATION
// =============================================================================

func TestLoginForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      LoginForm
		wantField string
		wantMsg   string
	}{
		{"valid email", LoginForm{"a@b.com", "secret1"}, "", ""},
		{"valid username", LoginForm{"alice_99", "secret1"}, "", ""},
		{"missing identifier", LoginForm{"", "secret1"}, FieldEmail, "Email is required"},
		{"garbage identifier", LoginForm{"not valid!!", "secret1"}, FieldEmail, "Enter a valid email or username"},
		{"missing password", LoginForm{"a@b.com", ""}, FieldPassword, "Password is required"},
		{"short password", LoginForm{"a@b.com", "abc"}, FieldPassword, "Password must be at least 6 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if tc.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tc.wantMsg, errs[tc.wantField])
		})
	}
}

// =============================================================================
// SIGNUP VALIDATION
// =============================================================================

func TestSignupForm_Validate(t *testing.T) {
	valid := SignupForm{Username: "alice", Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"}
	assert.Empty(t, valid.Validate())

	tests := []struct {
		name      string
		mutate    func(*SignupForm)
		wantField string
		wantMsg   string
	}{
		{"blank username", func(f *SignupForm) { f.Username = "  " }, FieldUsername, "Username is required"},
		{"missing email", func(f *SignupForm) { f.Email = "" }, FieldEmail, "Email is required"},
		{"bad email", func(f *SignupForm) { f.Email = "nope" }, FieldEmail, "Email is invalid"},
		{"short password", func(f *SignupForm) { f.Password = "abc"; f.ConfirmPassword = "abc" }, FieldPassword, "Password must be at least 6 characters"},
		{"mismatched confirm", func(f *SignupForm) { f.ConfirmPassword = "other12" }, FieldConfirmPassword, "Passwords do not match"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			errs := f.Validate()
			assert.Equal(t, tc.wantMsg, errs[tc.wantField])
		})
	}
}

func TestSignupForm_MultipleErrorsReportedTogether(t *testing.T) {
	errs := SignupForm{}.Validate()
	assert.Len(t, errs, 3) // username, email, password (confirm matches the empty password)
}

// =============================================================================
// AVAILABILITY CHECKS
// =============================================================================

func TestAvailabilityChecker_TakenUsernameVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Username already exists"}`))
	}))
	defer srv.Close()

	c := NewAvailabilityChecker(api.NewClient(srv.URL))
	warning, ok := c.CheckUsername(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, "Username already exists", warning)
}

func TestAvailabilityChecker_SkipsBlankAndBadInput(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()
	c := NewAvailabilityChecker(api.NewClient(srv.URL))

	_, ok := c.CheckUsername(context.Background(), "   ")
	assert.False(t, ok)
	_, ok = c.CheckEmail(context.Background(), "not-an-email")
	assert.False(t, ok)
	assert.Equal(t, 0, calls, "invalid input must never reach the network")
}

func TestAvailabilityChecker_Throttles(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()
	c := NewAvailabilityChecker(api.NewClient(srv.URL))

	// Rapid blur events: only the first goes through.
	for i := 0; i < 5; i++ {
		c.CheckUsername(context.Background(), "alice")
	}
	assert.Equal(t, 1, calls)

	// The email limiter is independent.
	_, ok := c.CheckEmail(context.Background(), "a@b.com")
	assert.True(t, ok)
	assert.Equal(t, 2, calls)
}

func TestAvailabilityChecker_TransportErrorIsSilent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewAvailabilityChecker(api.NewClient(srv.URL))

	warning, ok := c.CheckUsername(context.Background(), "alice")
	assert.False(t, ok, "an unreachable backend must not surface form noise")
	assert.Empty(t, warning)
}
