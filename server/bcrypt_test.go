package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlog/go-punchlog/server"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := server.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, server.ComparePasswordAndHash("correct horse battery", hash))
	assert.Error(t, server.ComparePasswordAndHash("wrong", hash))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := server.HashPassword("")
	assert.Error(t, err)
}

func TestComparePasswordMismatchSentinel(t *testing.T) {
	hash, err := server.HashPassword("secret-pass")
	require.NoError(t, err)

	err = server.ComparePasswordAndHash("other-pass", hash)
	assert.ErrorIs(t, err, server.ErrMismatchedHashAndPassword)
}
