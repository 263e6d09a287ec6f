// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/haven-tui/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "user.json"))
}

func TestStore_LoadAbsent(t *testing.T) {
	s := newTestStore(t)

	user, ok := s.Load()
	assert.False(t, ok)
	assert.Nil(t, user)
	assert.Nil(t, s.Current())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.Save(&model.User{ID: "u1", Username: "alice", Email: "a@b.com"})

	// A fresh store against the same path must see the saved identity.
	s2 := NewStore(s.Path())
	user, ok := s2.Load()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "u1", s2.Current().ID)
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{{ definitely not json"},
		{"wrong type", `"just a string"`},
		{"empty object", `{}`},
		{"empty file", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tc.body), 0600))

			// Malformed input must read as absent, never panic.
			user, ok := s.Load()
			assert.False(t, ok)
			assert.Nil(t, user)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.Save(&model.User{ID: "u1", Username: "alice"})
	s.Save(&model.User{ID: "u2", Username: "bob"})

	user, ok := NewStore(s.Path()).Load()
	require.True(t, ok)
	assert.Equal(t, "bob", user.Username)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	s.Save(&model.User{ID: "u1", Username: "alice"})
	s.Clear()

	assert.Nil(t, s.Current())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clear store is a no-op, not an error.
	s.Clear()
}

func TestStore_SaveToUnwritablePathDegrades(t *testing.T) {
	// Point the file path at a directory so the write fails.
	dir := t.TempDir()
	s := NewStore(dir)

	s.Save(&model.User{ID: "u1", Username: "alice"})

	// The in-memory identity still works for this session.
	require.NotNil(t, s.Current())
	assert.Equal(t, "alice", s.Current().Username)
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Save(&model.User{ID: "u1", Username: "alice"})

	got := s.Current()
	got.Username = "mallory"
	assert.Equal(t, "alice", s.Current().Username)
}

func TestWatcher_SeesExternalLogoutAndLogin(t *testing.T) {
	s := newTestStore(t)
	s.Save(&model.User{ID: "u1", Username: "alice"})

	w, err := NewWatcher(s)
	require.NoError(t, err)
	defer w.Close()

	// Another process logs in as a different user.
	other := NewStore(s.Path())
	other.Save(&model.User{ID: "u2", Username: "bob"})

	select {
	case user := <-w.Events():
		require.NotNil(t, user)
		assert.Equal(t, "bob", user.Username)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after external save")
	}

	// And then logs out.
	other.Clear()
	select {
	case user := <-w.Events():
		assert.Nil(t, user)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after external clear")
	}
}
