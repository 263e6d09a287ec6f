// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/util"
)

// Reader is the read-only view the chat and forum managers receive.
// They consult the identity but never change it, so the full Store is
// not exposed to them.
type Reader interface {
	Current() *model.User
}

// Store is the file-backed identity store. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	user *model.User
}

// NewStore creates a store backed by the given file path. Nothing is
// read until Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load restores a previously saved identity. Absent, unreadable or
// malformed files all yield (nil, false); the caller must never crash
// because last run's state went bad.
func (s *Store) Load() (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.user = nil
		return nil, false
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		// Malformed state is treated as absent, not fatal.
		s.user = nil
		return nil, false
	}

	s.user = &user
	u := user
	return &u, true
}

// Save persists user as the active identity, replacing any prior
// value. Write failures are logged and swallowed; the in-memory
// identity is still updated so the running session works, it just
// won't survive a restart.
func (s *Store) Save(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		log.Printf("identity: failed to encode user: %v", err)
		return
	}
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		log.Printf("identity: failed to persist user: %v", err)
	}
}

// Clear removes the active identity; used on logout. A missing file
// is not an error.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("identity: failed to remove identity file: %v", err)
	}
}

// Current returns the in-memory user, or nil when logged out. The
// returned value is a copy; callers cannot mutate the stored identity.
func (s *Store) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
