// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the plain command-line surface of haven.
//
// Every TUI capability has a scriptable equivalent here: one-shot
// questions (ask), an interactive REPL (chat), account management
// (login, signup, logout, whoami), the community board (posts) and
// configuration (config). Handlers print human output by default and
// honor --json where a machine-readable form makes sense.
package cli
