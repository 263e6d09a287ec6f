// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"regexp"
	"strings"
)

// Field names used as keys in validation results.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

var (
	// emailRe is deliberately loose: anything with a non-space local
	// part, an @ and a dotted domain. Real validation is the backend's
	// job; this only catches obvious typos before a request is made.
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

	// usernameRe matches the bare-username form the login field also
	// accepts in place of an email.
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// LoginForm is the input to the login endpoint. Identifier accepts an
// email address or a bare username.
type LoginForm struct {
	Identifier string
	Password   string
}

// SignupForm is the input to the signup endpoint.
type SignupForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the login form locally. The returned map is keyed by
// field name and empty when the form may be submitted.
func (f LoginForm) Validate() map[string]string {
	errs := make(map[string]string)

	if f.Identifier == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailRe.MatchString(f.Identifier) && !usernameRe.MatchString(f.Identifier) {
		errs[FieldEmail] = "Enter a valid email or username"
	}

	if f.Password == "" {
		errs[FieldPassword] = "Password is required"
	} else if len(f.Password) < MinPasswordLen {
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	return errs
}

// Validate checks the signup form locally.
func (f SignupForm) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Username) == "" {
		errs[FieldUsername] = "Username is required"
	}

	if f.Email == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailRe.MatchString(f.Email) {
		errs[FieldEmail] = "Email is invalid"
	}

	if f.Password == "" {
		errs[FieldPassword] = "Password is required"
	} else if len(f.Password) < MinPasswordLen {
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	if f.Password != f.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	return errs
}

// LooksLikeEmail reports whether s has a plausible email shape. The
// availability checker skips email pre-checks for values that would
// fail validation anyway.
func LooksLikeEmail(s string) bool {
	return emailRe.MatchString(s)
}
