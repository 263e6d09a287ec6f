// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the haven backend.
//
// Every endpoint responds with the same JSON envelope:
//
//	{"success": bool, "data": ..., "message": "..."}
//
// The client decodes the envelope regardless of HTTP status, converts
// success:false into an *APIError carrying the server's message
// verbatim, and treats a payload that does not match the expected
// shape as ErrShape. Nothing is retried automatically; callers
// re-trigger on demand.
package api
