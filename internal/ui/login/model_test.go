// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

func testModel(t *testing.T) Model {
	t.Helper()
	store := identity.NewStore(filepath.Join(t.TempDir(), "user.json"))
	return New(styles.NewTheme(), api.NewClient("http://127.0.0.1:1"), store, time.Second)
}

func TestSubmit_InvalidLoginStaysLocal(t *testing.T) {
	m := testModel(t)
	// Blank form: submit must produce field errors and no command (a
	// command would mean a network call).
	m, cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Equal(t, "Email is required", m.fieldErrs[auth.FieldEmail])
	assert.Equal(t, "Password is required", m.fieldErrs[auth.FieldPassword])
	assert.False(t, m.submitting)
}

func TestSubmit_ValidLoginFiresCommand(t *testing.T) {
	m := testModel(t)
	m.inputs[0].SetValue("alice")
	m.inputs[1].SetValue("secret1")

	m, cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Empty(t, m.fieldErrs)
}

func TestSignupMode_FieldLayout(t *testing.T) {
	m := testModel(t)
	m.setMode(ModeSignup)

	require.Len(t, m.inputs, signupFieldCount)
	assert.Equal(t, auth.FieldUsername, m.fieldKey(0))
	assert.Equal(t, auth.FieldEmail, m.fieldKey(1))
	assert.Equal(t, auth.FieldPassword, m.fieldKey(2))
	assert.Equal(t, auth.FieldConfirmPassword, m.fieldKey(3))
}

func TestSignupSubmit_MismatchedPasswords(t *testing.T) {
	m := testModel(t)
	m.setMode(ModeSignup)
	m.inputs[0].SetValue("alice")
	m.inputs[1].SetValue("a@b.com")
	m.inputs[2].SetValue("secret1")
	m.inputs[3].SetValue("other12")

	m, cmd := m.submit()
	assert.Nil(t, cmd)
	assert.Equal(t, "Passwords do not match", m.fieldErrs[auth.FieldConfirmPassword])
}

func TestAvailabilityMsg_SetsAndClearsHint(t *testing.T) {
	m := testModel(t)
	m.setMode(ModeSignup)

	m, _ = m.Update(AvailabilityMsg{Field: auth.FieldUsername, Warning: "Username already exists"})
	assert.Equal(t, "Username already exists", m.hints[auth.FieldUsername])

	m, _ = m.Update(AvailabilityMsg{Field: auth.FieldUsername, Warning: ""})
	_, ok := m.hints[auth.FieldUsername]
	assert.False(t, ok)
}

func TestAuthSuccess_ResetsForm(t *testing.T) {
	m := testModel(t)
	m.setMode(ModeSignup)
	m.submitting = true
	m.serverErr = "boom"

	m, _ = m.Update(AuthSuccessMsg{})
	assert.Equal(t, ModeLogin, m.Mode())
	assert.False(t, m.submitting)
	assert.Empty(t, m.serverErr)
}
