package punchlog

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoCredential is returned when no token is stored in the keychain
var ErrNoCredential = goerrors.New("no stored credential", goerrors.CategoryAuth).
	WithTextCode("NO_CREDENTIAL").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when the bearer token's claims cannot
// be decoded
var ErrTokenMalformed = goerrors.New("malformed authentication token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenRejected is returned when the server refuses the token
var ErrTokenRejected = goerrors.New("authentication token rejected", goerrors.CategoryAuth).
	WithTextCode("TOKEN_REJECTED").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidRole is returned when decoded claims carry a role outside
// the closed enumeration
var ErrInvalidRole = goerrors.New("unknown role in token claims", goerrors.CategoryAuth).
	WithTextCode("INVALID_ROLE").
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// loginErrorMessage extracts the server-provided message from a
// gateway error, falling back to the generic login failure message.
func loginErrorMessage(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return LoginErrorFallback
}
