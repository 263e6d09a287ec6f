// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the login and signup form views for the haven
// TUI.
//
// Both forms validate locally before any request is made, render
// per-field errors in place, and run the actual auth call as a tea.Cmd
// goroutine. The signup form additionally fires advisory availability
// probes when the username or email field loses focus; their warnings
// never block submission.
package login
