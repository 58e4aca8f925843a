package server

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned for unknown accounts and password
// mismatches alike, so login responses don't leak which one it was.
var ErrInvalidCredentials = goerrors.New("Invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrTooManyLoginAttempts is returned while an account is cooling down
var ErrTooManyLoginAttempts = goerrors.New("too many login attempts", goerrors.CategoryAuth).
	WithTextCode("TOO_MANY_ATTEMPTS").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their expiration
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail parsing or
// signature checks
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword mirrors the bcrypt comparison failure
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)
