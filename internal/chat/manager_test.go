// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/identity"
	"github.com/jeranaias/haven-tui/internal/model"
)

// testIdentity builds a store holding the given user (or none).
func testIdentity(t *testing.T, user *model.User) *identity.Store {
	t.Helper()
	s := identity.NewStore(filepath.Join(t.TempDir(), "user.json"))
	if user != nil {
		s.Save(user)
	}
	return s
}

// chatServer answers /chat with a fixed session ID and per-call bot IDs.
func chatServer(t *testing.T, sessionID string) (*api.Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"success":true,"data":{"sessionId":"%s","botMessage":{"id":"bot-%d","text":"reply %d","timestamp":"2026-01-02T15:04:05Z"}}}`,
			sessionID, calls, calls)
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL), &calls
}

func TestManager_SeedsWelcomeMessage(t *testing.T) {
	store := testIdentity(t, &model.User{ID: "u1", Username: "alice"})
	m := NewManager(api.NewClient(""), store)

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Hello alice!")
	assert.False(t, m.Bound())
}

func TestManager_Send_AppendsUserThenBot(t *testing.T) {
	client, calls := chatServer(t, "s1")
	m := NewManager(client, testIdentity(t, &model.User{ID: "u1", Username: "alice"}))

	require.NoError(t, m.Send(context.Background(), "  hello  "))

	msgs := m.Messages()
	require.Len(t, msgs, 3) // welcome, user, bot
	assert.Equal(t, "hello", msgs[1].Text)
	assert.True(t, msgs[1].IsUser())
	assert.Equal(t, "reply 1", msgs[2].Text)
	assert.Equal(t, "bot-1", msgs[2].ID)
	assert.Equal(t, 1, *calls)

	assert.True(t, m.Bound())
	assert.Equal(t, "s1", m.SessionID())
	assert.False(t, m.Busy())
}

func TestManager_Send_BlankRejectedBeforeNetwork(t *testing.T) {
	client, calls := chatServer(t, "s1")
	m := NewManager(client, testIdentity(t, nil))

	for _, text := range []string{"", "   ", "\n\t"} {
		err := m.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrBlank)
	}
	assert.Equal(t, 0, *calls)
	assert.Len(t, m.Messages(), 1) // welcome only
}

func TestManager_SessionBoundOnce(t *testing.T) {
	// Server hands out a different session ID on every call; the
	// manager must keep the first one.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"success":true,"data":{"sessionId":"session-%d","botMessage":{"id":"b%d","text":"ok","timestamp":"2026-01-02T15:04:05Z"}}}`, calls, calls)
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(srv.URL), testIdentity(t, nil))
	require.NoError(t, m.Send(context.Background(), "one"))
	require.NoError(t, m.Send(context.Background(), "two"))
	require.NoError(t, m.Send(context.Background(), "three"))

	assert.Equal(t, "session-1", m.SessionID())
}

func TestManager_Send_FailureAppendsFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"application error",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"message":"model overloaded"}`))
			},
		},
		{
			"malformed payload",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":{"wrong":"shape"}}`))
			},
		},
		{
			"not json at all",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`oops`))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			m := NewManager(api.NewClient(srv.URL), testIdentity(t, nil))

			err := m.Send(context.Background(), "hello")
			require.Error(t, err)

			msgs := m.Messages()
			require.Len(t, msgs, 3) // welcome, user, fallback
			assert.True(t, msgs[1].IsUser(), "user message must not be rolled back")
			assert.True(t, msgs[2].Failed, "exactly one synthetic failure bot message")
			assert.False(t, m.Bound(), "failure must not bind a session")
			assert.False(t, m.Busy())
		})
	}
}

func TestManager_Send_FailureKeepsBoundSession(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.Write([]byte(`{"success":false,"message":"down"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"sessionId":"s1","botMessage":{"id":"b1","text":"hi","timestamp":"2026-01-02T15:04:05Z"}}}`))
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(srv.URL), testIdentity(t, nil))
	require.NoError(t, m.Send(context.Background(), "bind me"))
	require.Equal(t, "s1", m.SessionID())

	fail = true
	require.Error(t, m.Send(context.Background(), "this fails"))
	assert.Equal(t, "s1", m.SessionID(), "failed send must leave the session untouched")
}

func TestManager_Send_BusyIsDroppedNotQueued(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"success":true,"data":{"sessionId":"s1","botMessage":{"id":"b1","text":"slow","timestamp":"2026-01-02T15:04:05Z"}}}`))
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(srv.URL), testIdentity(t, nil))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.Send(context.Background(), "first")
	}()

	// Wait until the first send is holding the busy flag.
	for !m.Busy() {
		time.Sleep(time.Millisecond)
	}

	err := m.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()

	// Only the first exchange happened: welcome, user, bot.
	msgs := m.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[1].Text)
}

func TestManager_AnonymousUserID(t *testing.T) {
	var gotUserID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"userId"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotUserID = body.UserID
		w.Write([]byte(`{"success":true,"data":{"sessionId":"s1","botMessage":{"id":"b1","text":"hi","timestamp":"2026-01-02T15:04:05Z"}}}`))
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(srv.URL), testIdentity(t, nil))
	require.NoError(t, m.Send(context.Background(), "hello"))
	assert.Equal(t, model.AnonymousID, gotUserID)
}

func TestManager_Reset(t *testing.T) {
	client, _ := chatServer(t, "s1")
	store := testIdentity(t, &model.User{ID: "u1", Username: "alice"})
	m := NewManager(client, store)

	require.NoError(t, m.Send(context.Background(), "hello"))
	require.True(t, m.Bound())

	require.True(t, m.Reset())
	assert.False(t, m.Bound(), "reset starts a new unbound conversation")
	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "alice")
}
