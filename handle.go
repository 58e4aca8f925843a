package punchlog

import (
	"context"
	"sync"
)

// Handle is the binding surface view code consumes. It subscribes to
// the store for its lifetime, keeps a fresh snapshot, and signals
// changes through a channel the view loop can select on. Creating a
// handle requests session initialization in the background, so a view
// mounting early in the process lifetime is enough to kick off the
// startup verification.
type Handle struct {
	store       *Store
	unsubscribe func()

	changed chan struct{}

	mu       sync.Mutex
	snapshot Session

	closeOnce sync.Once
}

// NewHandle binds to the store and requests initialization. Close the
// handle when the consuming view is torn down.
func NewHandle(ctx context.Context, store *Store) *Handle {
	h := &Handle{
		store:   store,
		changed: make(chan struct{}, 1),
	}

	h.snapshot = store.Snapshot()
	h.unsubscribe = store.Subscribe(h.refresh)

	go store.Initialize(ctx)

	return h
}

// refresh pulls a new snapshot and signals the change channel without
// blocking: a slow consumer coalesces notifications into one pending
// signal, always observing the latest snapshot when it gets around to
// reading it.
func (h *Handle) refresh() {
	h.mu.Lock()
	h.snapshot = h.store.Snapshot()
	h.mu.Unlock()

	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// Changed signals after every session change.
func (h *Handle) Changed() <-chan struct{} {
	return h.changed
}

// Snapshot returns the latest observed session.
func (h *Handle) Snapshot() Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot
}

// Login delegates to the store.
func (h *Handle) Login(ctx context.Context, creds Credentials) LoginResult {
	return h.store.Login(ctx, creds)
}

// Logout delegates to the store.
func (h *Handle) Logout() {
	h.store.Logout()
}

// HasRole delegates to the store.
func (h *Handle) HasRole(role Role) bool {
	return h.store.HasRole(role)
}

// Close unsubscribes; the handle receives no further notifications.
func (h *Handle) Close() {
	h.closeOnce.Do(h.unsubscribe)
}
