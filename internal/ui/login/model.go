// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthSuccessMsg signals a completed login or signup. The identity has
// already been persisted when this message arrives.
type AuthSuccessMsg struct {
	User *model.User
}

// AuthFailedMsg carries the backend's rejection, verbatim.
type AuthFailedMsg struct {
	Err error
}

// AvailabilityMsg delivers an advisory availability warning for a
// signup field. An empty warning clears the hint.
type AvailabilityMsg struct {
	Field   string
	Warning string
}

// SwitchModeMsg requests flipping between login and signup.
type SwitchModeMsg struct {
	Mode Mode
}

// =============================================================================
// MODEL
// =============================================================================

const (
	loginFieldCount  = 2
	signupFieldCount = 4
)

// Model is the auth form page.
type Model struct {
	theme   *styles.Theme
	client  *api.Client
	store   *identity.Store
	checker *auth.AvailabilityChecker
	timeout time.Duration

	mode       Mode
	inputs     []textinput.Model
	focus      int
	fieldErrs  map[string]string
	hints      map[string]string
	serverErr  string
	submitting bool
}

// New creates the auth page in login mode.
func New(theme *styles.Theme, client *api.Client, store *identity.Store, timeout time.Duration) Model {
	m := Model{
		theme:   theme,
		client:  client,
		store:   store,
		checker: auth.NewAvailabilityChecker(client),
		timeout: timeout,
	}
	m.setMode(ModeLogin)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the active form mode.
func (m Model) Mode() Mode {
	return m.mode
}

// setMode rebuilds the input set for the requested form.
func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.focus = 0
	m.fieldErrs = make(map[string]string)
	m.hints = make(map[string]string)
	m.serverErr = ""
	m.submitting = false

	if mode == ModeLogin {
		m.inputs = make([]textinput.Model, loginFieldCount)
		m.inputs[0] = newInput("Email or username", false)
		m.inputs[1] = newInput("Password", true)
	} else {
		m.inputs = make([]textinput.Model, signupFieldCount)
		m.inputs[0] = newInput("Username", false)
		m.inputs[1] = newInput("Email", false)
		m.inputs[2] = newInput("Password", true)
		m.inputs[3] = newInput("Confirm password", true)
	}
	m.inputs[0].Focus()
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return ti
}

// =============================================================================
// COMMANDS
// =============================================================================

// loginCmd runs the login request and persists the identity on success.
func (m Model) loginCmd(form auth.LoginForm) tea.Cmd {
	client, store, timeout := m.client, m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := client.Login(ctx, form.Identifier, form.Password)
		if err != nil {
			return AuthFailedMsg{Err: err}
		}
		store.Save(user)
		return AuthSuccessMsg{User: user}
	}
}

// signupCmd runs the signup request and persists the identity on success.
func (m Model) signupCmd(form auth.SignupForm) tea.Cmd {
	client, store, timeout := m.client, m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := client.Signup(ctx, form.Username, form.Email, form.Password, form.ConfirmPassword)
		if err != nil {
			return AuthFailedMsg{Err: err}
		}
		store.Save(user)
		return AuthSuccessMsg{User: user}
	}
}

// availabilityCmd fires an advisory probe for the field that just lost
// focus. Throttled or skipped probes produce no message at all.
func (m Model) availabilityCmd(field, value string) tea.Cmd {
	checker, timeout := m.checker, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var warning string
		var ok bool
		switch field {
		case auth.FieldUsername:
			warning, ok = checker.CheckUsername(ctx, value)
		case auth.FieldEmail:
			warning, ok = checker.CheckEmail(ctx, value)
		}
		if !ok {
			return nil
		}
		return AvailabilityMsg{Field: field, Warning: warning}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			return m.cycleFocus(1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m.cycleFocus(-1)
		case tea.KeyEnter:
			if m.focus == len(m.inputs)-1 {
				return m.submit()
			}
			return m.cycleFocus(1)
		case tea.KeyCtrlS:
			return m.submit()
		case tea.KeyCtrlT:
			// Flip between login and signup.
			next := ModeSignup
			if m.mode == ModeSignup {
				next = ModeLogin
			}
			m.setMode(next)
			return m, textinput.Blink
		}

	case SwitchModeMsg:
		m.setMode(msg.Mode)
		return m, textinput.Blink

	case AuthSuccessMsg:
		// The app switches away; leave a clean login form behind so
		// a later logout starts fresh.
		m.setMode(ModeLogin)
		return m, nil

	case AuthFailedMsg:
		m.submitting = false
		var apiErr *api.APIError
		if errors.As(msg.Err, &apiErr) {
			m.serverErr = apiErr.Message
		} else {
			m.serverErr = msg.Err.Error()
		}
		return m, nil

	case AvailabilityMsg:
		if m.mode == ModeSignup {
			if msg.Warning == "" {
				delete(m.hints, msg.Field)
			} else {
				m.hints[msg.Field] = msg.Warning
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus moves focus and fires the availability probe when a
// signup identity field is left.
func (m Model) cycleFocus(delta int) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.mode == ModeSignup {
		switch m.focus {
		case 0:
			cmds = append(cmds, m.availabilityCmd(auth.FieldUsername, m.inputs[0].Value()))
		case 1:
			cmds = append(cmds, m.availabilityCmd(auth.FieldEmail, m.inputs[1].Value()))
		}
	}

	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	cmds = append(cmds, m.inputs[m.focus].Focus())
	return m, tea.Batch(cmds...)
}

// submit validates locally and fires the auth request.
func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.serverErr = ""

	if m.mode == ModeLogin {
		form := auth.LoginForm{
			Identifier: m.inputs[0].Value(),
			Password:   m.inputs[1].Value(),
		}
		m.fieldErrs = form.Validate()
		if len(m.fieldErrs) > 0 {
			return m, nil
		}
		m.submitting = true
		return m, m.loginCmd(form)
	}

	form := auth.SignupForm{
		Username:        m.inputs[0].Value(),
		Email:           m.inputs[1].Value(),
		Password:        m.inputs[2].Value(),
		ConfirmPassword: m.inputs[3].Value(),
	}
	m.fieldErrs = form.Validate()
	if len(m.fieldErrs) > 0 {
		return m, nil
	}
	m.submitting = true
	return m, m.signupCmd(form)
}
