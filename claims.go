package punchlog

import (
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenClaims is the claim shape the punchlog backend embeds in its
// bearer tokens. Decoding happens without signature verification: the
// client uses claims for display and UX gating only, the server
// re-validates the token on every request.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// UserID returns the user ID, falling back to the subject claim.
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// DecodeProfile extracts the user profile embedded in a bearer token.
// Tampered or structurally invalid tokens, and tokens carrying a role
// outside the closed enumeration, are reported as errors; callers
// treat both the same as a rejected credential.
func DecodeProfile(token string) (*Profile, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	role := Role(claims.UserRole)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &Profile{
		ID:    claims.UserID(),
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}, nil
}
