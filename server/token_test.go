package server_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/server"
)

func testUser() *server.User {
	return &server.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  punchlog.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := server.NewTokenService([]byte("signing-key"), time.Hour, "punchlog", nil)
	user := testUser()

	signed, err := tokens.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims.UserID())
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.UserRole)
	assert.Equal(t, "punchlog", claims.Issuer)
}

func TestTokenClaimsDecodableByClient(t *testing.T) {
	tokens := server.NewTokenService([]byte("signing-key"), time.Hour, "punchlog", nil)
	user := testUser()

	signed, err := tokens.Generate(user)
	require.NoError(t, err)

	// the client decodes without the signing key
	profile, err := punchlog.DecodeProfile(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, punchlog.RoleAdmin, profile.Role)
}

func TestTokenExpired(t *testing.T) {
	tokens := server.NewTokenService([]byte("signing-key"), time.Millisecond, "punchlog", nil)

	signed, err := tokens.Generate(testUser())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tokens.Validate(signed)
	assert.ErrorIs(t, err, server.ErrTokenExpired)
	assert.True(t, punchlog.IsTokenExpiredError(err))
}

func TestTokenWrongKey(t *testing.T) {
	minter := server.NewTokenService([]byte("key-one"), time.Hour, "punchlog", nil)
	checker := server.NewTokenService([]byte("key-two"), time.Hour, "punchlog", nil)

	signed, err := minter.Generate(testUser())
	require.NoError(t, err)

	_, err = checker.Validate(signed)
	assert.Error(t, err)
}

func TestTokenWrongIssuer(t *testing.T) {
	minter := server.NewTokenService([]byte("signing-key"), time.Hour, "other", nil)
	checker := server.NewTokenService([]byte("signing-key"), time.Hour, "punchlog", nil)

	signed, err := minter.Generate(testUser())
	require.NoError(t, err)

	_, err = checker.Validate(signed)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tokens := server.NewTokenService([]byte("signing-key"), time.Hour, "punchlog", nil)

	_, err := tokens.Validate("not-a-token")
	assert.Error(t, err)
	assert.True(t, punchlog.IsMalformedError(err))
}
