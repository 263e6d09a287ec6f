// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// SEND MESSAGES
// =============================================================================

// SendStartedMsg signals that a send was accepted and is in flight.
type SendStartedMsg struct {
	Generation int
}

// SendFinishedMsg signals that a send finished, successfully or not.
// The transcript already contains the outcome (bot reply or the
// fallback bubble); Err carries the cause for the status line.
type SendFinishedMsg struct {
	Generation int
	Err        error
}

// SendRejectedMsg signals that a send never started (blank input or a
// send already in flight).
type SendRejectedMsg struct {
	Err error
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationResetMsg signals that the transcript was cleared.
type ConversationResetMsg struct{}
