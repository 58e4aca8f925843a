package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"

	punchlog "github.com/punchlog/go-punchlog"
)

// TokenService mints and validates the bearer tokens the client
// decodes. Claims embed the display profile (id, name, email, role) so
// the client never needs a profile endpoint after login.
type TokenService struct {
	signingKey []byte
	expiration time.Duration
	issuer     string
	logger     punchlog.Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, expiration time.Duration, issuer string, logger punchlog.Logger) *TokenService {
	if logger == nil {
		logger = DefaultLogger()
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &TokenService{
		signingKey: signingKey,
		expiration: expiration,
		issuer:     issuer,
		logger:     logger,
	}
}

// Generate mints a signed token for the user
func (ts *TokenService) Generate(user *User) (string, error) {
	now := time.Now()
	claims := &punchlog.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiration)),
		},
		UID:      user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		UserRole: string(user.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and validates a token string, returning its claims
func (ts *TokenService) Validate(tokenString string) (*punchlog.TokenClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &punchlog.TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*punchlog.TokenClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
