// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"

	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// fieldKey maps an input index to its validation key for the active
// mode. The login identifier reuses the email key.
func (m Model) fieldKey(i int) string {
	if m.mode == ModeLogin {
		return [...]string{auth.FieldEmail, auth.FieldPassword}[i]
	}
	return [...]string{auth.FieldUsername, auth.FieldEmail, auth.FieldPassword, auth.FieldConfirmPassword}[i]
}

func (m Model) fieldLabel(i int) string {
	if m.mode == ModeLogin {
		return [...]string{"Email or username", "Password"}[i]
	}
	return [...]string{"Username", "Email", "Password", "Confirm password"}[i]
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to Haven"
	flip := "ctrl+t: create an account"
	if m.mode == ModeSignup {
		title = "Create your Haven account"
		flip = "ctrl+t: sign in instead"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	for i := range m.inputs {
		key := m.fieldKey(i)
		b.WriteString(m.theme.FormLabel.Render(m.fieldLabel(i)))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := m.fieldErrs[key]; ok {
			b.WriteString(m.theme.FieldError.Render(msg))
			b.WriteString("\n")
		} else if hint, ok := m.hints[key]; ok {
			b.WriteString(m.theme.FieldHint.Render(hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString(m.theme.SubmitFocused.Render("Working..."))
	} else {
		b.WriteString(m.theme.SubmitButton.Render("enter: submit"))
	}
	b.WriteString("\n")

	if m.serverErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderError(m.serverErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render(flip))

	return m.theme.FormBox.Render(b.String())
}
