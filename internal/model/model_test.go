// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// CHAT MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Sender != SenderUser {
		t.Errorf("Sender = %q, want %q", msg.Sender, SenderUser)
	}
	if msg.ID == "" {
		t.Error("user message must get a client-generated ID")
	}
	if msg.Text != "hello" {
		t.Errorf("Text = %q", msg.Text)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	// IDs must be unique per message within a session.
	other := NewUserMessage("hello")
	if other.ID == msg.ID {
		t.Error("two user messages share an ID")
	}
}

func TestNewBotMessage_ZeroTimestamp(t *testing.T) {
	msg := NewBotMessage("srv-1", "hi", time.Time{})
	if msg.Timestamp.IsZero() {
		t.Error("zero server timestamp should be replaced with local time")
	}
	if msg.ID != "srv-1" {
		t.Errorf("bot message must keep the server-assigned ID, got %q", msg.ID)
	}
}

func TestNewWelcomeMessage(t *testing.T) {
	anon := NewWelcomeMessage(nil)
	if !strings.HasPrefix(anon.Text, "Hello!") {
		t.Errorf("anonymous greeting = %q", anon.Text)
	}

	named := NewWelcomeMessage(&User{Username: "alice"})
	if !strings.Contains(named.Text, "Hello alice!") {
		t.Errorf("named greeting = %q", named.Text)
	}
	if named.Sender != SenderBot {
		t.Errorf("welcome sender = %q, want bot", named.Sender)
	}
}

func TestNewFailureMessage(t *testing.T) {
	msg := NewFailureMessage()
	if !msg.Failed {
		t.Error("failure message must carry the Failed flag")
	}
	if msg.Sender != SenderBot {
		t.Errorf("failure sender = %q, want bot", msg.Sender)
	}
}

func TestSender_DisplayName(t *testing.T) {
	if SenderUser.DisplayName() != "You" {
		t.Errorf("user display name = %q", SenderUser.DisplayName())
	}
	if SenderBot.DisplayName() != "Assistant" {
		t.Errorf("bot display name = %q", SenderBot.DisplayName())
	}
}

// =============================================================================
// USER TESTS
// =============================================================================

func TestUser_AnonymousFallbacks(t *testing.T) {
	var u *User
	if u.AuthorID() != AnonymousID {
		t.Errorf("nil user AuthorID = %q", u.AuthorID())
	}
	if u.AuthorName() != AnonymousName {
		t.Errorf("nil user AuthorName = %q", u.AuthorName())
	}

	full := &User{ID: "u1", Username: "alice"}
	if full.AuthorID() != "u1" || full.AuthorName() != "alice" {
		t.Errorf("full user fallbacks fired: %q %q", full.AuthorID(), full.AuthorName())
	}
}

// =============================================================================
// TAG NORMALIZATION TESTS
// =============================================================================

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "ai, tips, discussion", []string{"ai", "tips", "discussion"}},
		{"extra whitespace", "  ai ,  tips  ", []string{"ai", "tips"}},
		{"empty entries dropped", "ai,,,tips,", []string{"ai", "tips"}},
		{"duplicates dropped", "ai,ai, ai", []string{"ai"}},
		{"all blank", " , , ", []string{}},
		{"empty input", "", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTags(tc.raw)
			if len(got) != len(tc.want) {
				t.Fatalf("NormalizeTags(%q) = %v, want %v", tc.raw, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("NormalizeTags(%q)[%d] = %q, want %q", tc.raw, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	inputs := []string{"ai, tips, discussion", "a,,b , c", "x"}
	for _, raw := range inputs {
		once := NormalizeTags(raw)
		twice := NormalizeTags(strings.Join(once, ","))
		if len(once) != len(twice) {
			t.Fatalf("normalization not idempotent for %q: %v vs %v", raw, once, twice)
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Errorf("normalization not idempotent for %q: %v vs %v", raw, once, twice)
			}
		}
	}
}

// =============================================================================
// POST TESTS
// =============================================================================

func TestPost_Preview(t *testing.T) {
	p := Post{Content: strings.Repeat("x", 200)}
	if got := p.Preview(150); util.RuneLen(got) > 150 {
		t.Errorf("preview too long: %d runes", util.RuneLen(got))
	}

	short := Post{Content: "short body"}
	if short.Preview(150) != "short body" {
		t.Errorf("short content should be unchanged, got %q", short.Preview(150))
	}
}

func TestPost_AuthorFallback(t *testing.T) {
	if (Post{}).Author() != "Unknown" {
		t.Error("empty author should render as Unknown")
	}
	if (Reply{AuthorUsername: "bob"}).Author() != "bob" {
		t.Error("reply author lost")
	}
}
