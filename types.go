package punchlog

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Gateway is the transport to the backend's authentication endpoints.
// It is stateless; the Store owns all session state.
type Gateway interface {
	Login(ctx context.Context, creds Credentials) (*LoginResponse, error)
	Verify(ctx context.Context, token string) error
}

// Keychain is the durable slot holding the bearer token between runs.
// Get returns an empty string, not an error, when no token is stored.
type Keychain interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// CredentialSink is any API client that must attach the current bearer
// token to its own requests. The application partitions its network
// surface into independently configured clients, so each one learns
// the token through this registration call.
type CredentialSink interface {
	SetCredential(token string)
}

// Profile holds the attributes of the authenticated user. It is
// replaced wholesale on every login or verify, never patched in place.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the in-memory representation of the current auth state.
// IsAuthenticated is true exactly when User is set. Token may be
// present while a verification is still in flight.
type Session struct {
	User            *Profile
	Token           string
	IsAuthenticated bool
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// LoginResponse is the payload returned by the login endpoint.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// LoginResult is what view code renders after a login attempt. On
// failure Error carries the server-provided message when available.
type LoginResult struct {
	Success bool
	Role    Role
	Error   string
}

// LoginErrorFallback is the generic message used when the server did
// not provide one.
const LoginErrorFallback = "Login error. Check your credentials."

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] PUNCHLOG "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] PUNCHLOG "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] PUNCHLOG "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] PUNCHLOG "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
