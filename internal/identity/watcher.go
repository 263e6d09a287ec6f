// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/haven-tui/internal/model"
)

// watchDebounce coalesces the burst of events an atomic rename emits.
const watchDebounce = 200 * time.Millisecond

// Watcher observes the identity file so a login or logout performed by
// another process (the plain CLI while the TUI runs, or a second
// terminal) is picked up without polling. Each change delivers the
// freshly loaded identity, nil meaning logged out.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	events  chan *model.User

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// NewWatcher creates a watcher for the store's backing file. Watch the
// parent directory rather than the file itself: atomic writes replace
// the file, which would silently drop a direct watch.
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		store:   store,
		watcher: fw,
		events:  make(chan *model.User, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events returns the channel of identity changes.
func (w *Watcher) Events() <-chan *model.User {
	return w.events
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			w.schedule()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors degrade to "no live updates"; the startup
			// Load already established a usable identity.
		}
	}
}

// schedule arms (or re-arms) the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(watchDebounce, w.fire)
}

func (w *Watcher) fire() {
	user, _ := w.store.Load()

	// Drop a stale undelivered event so the channel always carries the
	// latest state.
	select {
	case <-w.events:
	default:
	}
	select {
	case w.events <- user:
	case <-w.done:
	}
}
