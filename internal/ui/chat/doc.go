// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the assistant chat view for the haven TUI.
//
// The view wraps a chat.Manager: input is captured with bubbles
// textinput, the transcript is rendered into a bubbles viewport, and
// sends run as tea.Cmd goroutines so the UI stays responsive while the
// backend generates a response. A generation counter discards
// completions that arrive after the conversation was reset.
package chat
