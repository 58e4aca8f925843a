package server

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	punchlog "github.com/punchlog/go-punchlog"
)

// MaxLoginAttempts is the maximum number of attempts a user gets
// in a cooldown period
var MaxLoginAttempts = 5

// CoolDownPeriod is the window in which failed attempts accumulate
var CoolDownPeriod = "24h"

// Authenticator verifies account credentials and tracks login
// attempts so brute forcing cools off.
type Authenticator struct {
	users  Users
	tokens *TokenService
	logger punchlog.Logger
}

// NewAuthenticator returns an authenticator over the users repository.
func NewAuthenticator(users Users, tokens *TokenService) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		logger: DefaultLogger(),
	}
}

func (a *Authenticator) WithLogger(logger punchlog.Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login verifies the credentials and mints a token. Unknown accounts
// and bad passwords surface the same ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := a.VerifyIdentity(ctx, email, password)
	if err != nil {
		a.logger.Error("Login verify identity error", "error", err)
		return "", nil, err
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// VerifyIdentity will find the user, compare the password, and return
// the account
func (a *Authenticator) VerifyIdentity(ctx context.Context, email, password string) (*User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user.LoginAttemptAt != nil {
		expired, err := IsOutsideThresholdPeriod(*user.LoginAttemptAt, CoolDownPeriod)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to calculate login attempt cooldown")
		}

		if expired {
			user.LoginAttempts = 0
		}
	}

	// too many attempts in the window, cool off
	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if err2 := a.users.TrackAttemptedLogin(ctx, user); err2 != nil {
			return nil, goerrors.Wrap(err2, goerrors.CategoryInternal, "failed to track login attempt")
		}
		return nil, ErrInvalidCredentials
	}

	if err := a.users.TrackSuccessfulLogin(ctx, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track login")
	}

	return user, nil
}
