// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Anonymous author values used when no identity is present. The backend
// accepts these as literal author fields rather than rejecting the call.
const (
	AnonymousID   = "anonymous"
	AnonymousName = "Anonymous"
)

// User is the authenticated account. Created by a successful login or
// signup exchange and replaced wholesale on re-login, never mutated.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthorID returns the user's ID, or the anonymous ID for a nil user.
func (u *User) AuthorID() string {
	if u == nil || u.ID == "" {
		return AnonymousID
	}
	return u.ID
}

// AuthorName returns the username, or the anonymous name for a nil user.
func (u *User) AuthorName() string {
	if u == nil || u.Username == "" {
		return AnonymousName
	}
	return u.Username
}
