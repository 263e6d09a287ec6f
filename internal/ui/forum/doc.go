// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forum provides the community board views for the haven TUI.
//
// A single page model covers three screens: the post list, a post
// detail with its reply thread, and the compose form for a new post.
// Post bodies are rendered through glamour, so markdown written on the
// web client reads cleanly in the terminal. Every mutation goes
// through the forum managers, which re-fetch from the backend so the
// screen always shows server-assigned fields.
package forum
