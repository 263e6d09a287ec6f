// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the client-side half of authentication: form
// validation and the advisory username/email availability checks.
//
// Validation errors are local, surfaced per field, and never sent to
// the network. Availability checks are throttled and purely advisory;
// the backend enforces uniqueness at signup time regardless of what a
// pre-check said, so a stale "available" can never sneak a duplicate
// through.
package auth
