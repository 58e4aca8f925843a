package client

import (
	"context"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	punchlog "github.com/punchlog/go-punchlog"
)

// Gateway talks to the backend's authentication endpoints. It is
// stateless with respect to the session: Verify takes the token
// explicitly, and the only credential it retains is whatever the
// session store broadcasts, like any other sink.
type Gateway struct {
	*Client
}

// NewGateway returns a gateway rooted at {base}/auth.
func NewGateway(base string, opts ...Option) *Gateway {
	return &Gateway{Client: New(base+"/auth", opts...)}
}

// Login exchanges credentials for a token and user profile. The error
// carries the server-provided message when one was returned.
func (g *Gateway) Login(ctx context.Context, creds punchlog.Credentials) (*punchlog.LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	out := &punchlog.LoginResponse{}
	if err := g.do(ctx, http.MethodPost, "/login", nil, creds, out); err != nil {
		return nil, err
	}

	if out.Token == "" {
		return nil, goerrors.New("login response missing token", goerrors.CategoryOperation)
	}

	return out, nil
}

// verifyResponse is any truthy payload; the backend sends {ok: true}.
type verifyResponse struct {
	OK bool `json:"ok"`
}

// Verify asks the backend whether the token is still good, attaching
// it as the bearer credential for this one request.
func (g *Gateway) Verify(ctx context.Context, token string) error {
	req := New(g.base)
	req.http = g.http
	req.SetCredential(token)

	out := &verifyResponse{}
	return req.do(ctx, http.MethodGet, "/verify", nil, nil, out)
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Register creates a new account.
func (g *Gateway) Register(ctx context.Context, req RegisterRequest) (*punchlog.Profile, error) {
	out := &punchlog.Profile{}
	if err := g.do(ctx, http.MethodPost, "/register", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
