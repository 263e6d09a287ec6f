// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the haven client.
//
// It contains rune- and width-aware string truncation used by the TUI
// views, and atomic file writing used by the identity store and config.
package util
