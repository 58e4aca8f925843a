package punchlog_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	punchlog "github.com/punchlog/go-punchlog"
)

func TestDecodeProfile(t *testing.T) {
	token := mintToken(t, "Ada", "ada@example.com", "ADMIN")

	profile, err := punchlog.DecodeProfile(token)
	require.NoError(t, err)

	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, punchlog.RoleAdmin, profile.Role)
	assert.NotEmpty(t, profile.ID)
}

func TestDecodeProfileFallsBackToSubject(t *testing.T) {
	claims := &punchlog.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserRole: "USER",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	profile, err := punchlog.DecodeProfile(token)
	require.NoError(t, err)
	assert.Equal(t, "subject-id", profile.ID)
}

func TestDecodeProfileMalformed(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"a.b",
		"!!!.###.$$$",
	}

	for _, token := range cases {
		profile, err := punchlog.DecodeProfile(token)
		assert.Error(t, err, "token %q", token)
		assert.Nil(t, profile)
	}
}

func TestDecodeProfileUnknownRole(t *testing.T) {
	token := mintToken(t, "Eve", "eve@example.com", "ROOT")

	profile, err := punchlog.DecodeProfile(token)
	assert.ErrorIs(t, err, punchlog.ErrInvalidRole)
	assert.Nil(t, profile)
}

func TestDecodeProfileMissingRole(t *testing.T) {
	claims := &punchlog.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "s"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	profile, err := punchlog.DecodeProfile(token)
	assert.Error(t, err)
	assert.Nil(t, profile)
}
