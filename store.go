package punchlog

import (
	"context"
	"sync"
)

// Store is the single source of truth for session data. All mutation
// funnels through Initialize, Login and Logout; consumers read through
// Snapshot and react through Subscribe.
//
// Every state-owning operation captures the store's generation counter
// before suspending on the network. Logout and Login bump the counter,
// so a verify that completes after the user logged out (or logged in
// again) finds its generation stale and discards its result instead of
// resurrecting a dead session.
type Store struct {
	mu       sync.Mutex
	gateway  Gateway
	keychain Keychain
	logger   Logger

	session    Session
	generation uint64

	sinks []CredentialSink

	subscribers []subscriber
	subSeq      uint64
}

type subscriber struct {
	id uint64
	fn func()
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithLogger overrides the default logger.
func WithLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSinks registers credential sinks at construction time.
func WithSinks(sinks ...CredentialSink) StoreOption {
	return func(s *Store) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// NewStore returns a session store backed by the given gateway and
// credential slot. The store starts unauthenticated; call Initialize
// to restore a persisted session.
func NewStore(gateway Gateway, keychain Keychain, opts ...StoreOption) *Store {
	s := &Store{
		gateway:  gateway,
		keychain: keychain,
		logger:   defLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterSink adds an API client to the credential broadcast list.
// If a session is already established the sink receives the current
// token immediately.
func (s *Store) RegisterSink(sink CredentialSink) {
	if sink == nil {
		return
	}

	s.mu.Lock()
	s.sinks = append(s.sinks, sink)
	token := ""
	if s.session.IsAuthenticated {
		token = s.session.Token
	}
	s.mu.Unlock()

	if token != "" {
		sink.SetCredential(token)
	}
}

// Initialize restores the session from the persisted credential. With
// no stored token it completes immediately, leaving the session
// unauthenticated. Otherwise it verifies the token with the gateway;
// on success the decoded claims become the user profile and the token
// is broadcast to every sink, on any failure (transport error,
// rejected token, malformed claims) the credential is destroyed.
//
// Initialize is safe to call repeatedly and concurrently: duplicate
// in-flight verifications converge on the same state, and completions
// whose generation went stale (a logout or login happened meanwhile)
// are discarded. Subscribers are notified exactly once per call that
// ran to completion. Returns whether the session is authenticated.
func (s *Store) Initialize(ctx context.Context) bool {
	s.mu.Lock()
	gen := s.generation

	token, err := s.keychain.Get()
	if err != nil {
		s.logger.Error("Initialize keychain read error", "error", err)
		token = ""
	}

	if token == "" {
		authenticated := s.session.IsAuthenticated
		s.mu.Unlock()
		s.notify()
		return authenticated
	}

	s.session.Token = token
	s.mu.Unlock()

	verr := s.gateway.Verify(ctx, token)

	var profile *Profile
	if verr == nil {
		profile, verr = DecodeProfile(token)
	}

	s.mu.Lock()
	if s.generation != gen {
		// A logout or fresh login owns the state now; this result is
		// stale and whoever bumped the generation already notified.
		s.mu.Unlock()
		return false
	}

	if verr != nil {
		s.logger.Error("Initialize verify error", "error", verr)
		s.clearLocked()
		s.mu.Unlock()
		s.notify()
		return false
	}

	s.broadcastLocked(token)
	s.session.User = profile
	s.session.IsAuthenticated = true
	s.mu.Unlock()

	s.notify()
	return true
}

// Login authenticates against the gateway. On success the token is
// persisted, broadcast to every sink, and the session is replaced with
// the profile from the login response. On failure the session is left
// untouched and subscribers are not notified; the result carries the
// server's message when one was provided.
func (s *Store) Login(ctx context.Context, creds Credentials) LoginResult {
	resp, err := s.gateway.Login(ctx, creds)
	if err != nil {
		s.logger.Error("Login error", "error", err)
		return LoginResult{Success: false, Error: loginErrorMessage(err)}
	}

	profile := resp.User

	s.mu.Lock()
	s.generation++

	if err := s.keychain.Set(resp.Token); err != nil {
		// The in-memory session still works for this run; the next
		// start simply lands on the login screen again.
		s.logger.Error("Login keychain write error", "error", err)
	}

	s.broadcastLocked(resp.Token)
	s.session = Session{
		User:            &profile,
		Token:           resp.Token,
		IsAuthenticated: true,
	}
	s.mu.Unlock()

	s.notify()
	return LoginResult{Success: true, Role: profile.Role}
}

// Logout destroys both copies of the credential and clears the user.
// It is synchronous, never fails, and always notifies. Sinks keep the
// last token they saw: there is no un-registration call, a fresh login
// re-broadcasts (in-flight requests are never retroactively altered).
func (s *Store) Logout() {
	s.mu.Lock()
	s.generation++
	s.clearLocked()
	s.mu.Unlock()

	s.notify()
}

// HasRole reports whether the authenticated user's role equals the
// required role. Always false when unauthenticated.
func (s *Store) HasRole(required Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.User == nil {
		return false
	}
	return s.session.User.Role == required
}

// Snapshot returns the current session as a value; the embedded
// profile is copied so consumers cannot mutate store state.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.session
	if s.session.User != nil {
		user := *s.session.User
		out.User = &user
	}
	return out
}

// Subscribe registers a callback invoked after every state-changing
// operation completes. The returned function removes exactly that
// registration; after it returns the callback receives no further
// notifications.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subSeq++
	id := s.subSeq
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// clearLocked wipes both credential copies and the user. Callers hold
// the lock and are responsible for notifying.
func (s *Store) clearLocked() {
	if err := s.keychain.Clear(); err != nil {
		s.logger.Error("Logout keychain clear error", "error", err)
	}
	s.session = Session{}
}

// broadcastLocked pushes the token to every registered sink, in
// registration order, before any subscriber learns about the change.
func (s *Store) broadcastLocked(token string) {
	for _, sink := range s.sinks {
		sink.SetCredential(token)
	}
}

// notify invokes subscribers in insertion order over a snapshot of the
// list, so a subscribe or unsubscribe triggered by a callback cannot
// corrupt the iteration.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), len(s.subscribers))
	for i, sub := range s.subscribers {
		fns[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
