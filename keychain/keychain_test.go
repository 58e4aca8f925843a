package keychain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlog/go-punchlog/keychain"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	kc := keychain.NewFile(path)

	// empty slot reads as empty, not as an error
	token, err := kc.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, kc.Set("the-token"))

	token, err = kc.Get()
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)

	require.NoError(t, kc.Clear())

	token, err = kc.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileClearIsIdempotent(t *testing.T) {
	kc := keychain.NewFile(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, kc.Clear())
	require.NoError(t, kc.Clear())
}

func TestFileTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  the-token\n"), 0o600))

	kc := keychain.NewFile(path)
	token, err := kc.Get()
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
}

func TestFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	kc := keychain.NewFile(path)
	require.NoError(t, kc.Set("the-token"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMemoryRoundTrip(t *testing.T) {
	kc := keychain.NewMemory()

	token, err := kc.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, kc.Set("the-token"))

	token, err = kc.Get()
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)

	require.NoError(t, kc.Clear())

	token, err = kc.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
}
