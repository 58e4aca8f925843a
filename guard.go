package punchlog

import "context"

// GuardState is the gate's observable state.
type GuardState int

const (
	// GuardChecking means the session has not been resolved yet;
	// render a neutral placeholder.
	GuardChecking GuardState = iota
	// GuardAuthorized means the protected content may render.
	GuardAuthorized
	// GuardDenied means access was refused; follow Decision.Redirect.
	GuardDenied
)

func (s GuardState) String() string {
	switch s {
	case GuardChecking:
		return "checking"
	case GuardAuthorized:
		return "authorized"
	case GuardDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// DefaultRedirect is where unauthenticated users are sent.
const DefaultRedirect = "/login"

// AccessDeniedRedirect is where authenticated users lacking the
// required role are sent. It is fixed: RedirectTo does not apply to
// role denials.
const AccessDeniedRedirect = "/access-denied"

// Decision is the outcome of resolving a guard.
type Decision struct {
	State    GuardState
	Redirect string
}

// Guard gates a protected view subtree on session state. A guard with
// no required role checks authentication only; guards compose, so a
// role-scoped guard nested inside an authentication guard narrows
// access further.
type Guard struct {
	store        *Store
	requiredRole Role
	redirectTo   string
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithRequiredRole makes the guard require an exact role match in
// addition to authentication.
func WithRequiredRole(role Role) GuardOption {
	return func(g *Guard) {
		g.requiredRole = role
	}
}

// WithRedirectTo overrides where unauthenticated users are sent.
func WithRedirectTo(path string) GuardOption {
	return func(g *Guard) {
		if path != "" {
			g.redirectTo = path
		}
	}
}

// NewGuard returns a guard over the given store.
func NewGuard(store *Store, opts ...GuardOption) *Guard {
	g := &Guard{
		store:      store,
		redirectTo: DefaultRedirect,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Resolve initializes the session (idempotent; duplicate in-flight
// verifications are accepted by the store) and decides whether the
// protected content may render. Unauthenticated sessions redirect to
// the configured destination; authenticated sessions missing the
// required role redirect to AccessDeniedRedirect.
func (g *Guard) Resolve(ctx context.Context) Decision {
	g.store.Initialize(ctx)

	snapshot := g.store.Snapshot()
	if !snapshot.IsAuthenticated {
		return Decision{State: GuardDenied, Redirect: g.redirectTo}
	}

	if g.requiredRole != "" && !g.store.HasRole(g.requiredRole) {
		return Decision{State: GuardDenied, Redirect: AccessDeniedRedirect}
	}

	return Decision{State: GuardAuthorized}
}
