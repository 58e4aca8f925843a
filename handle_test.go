package punchlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/keychain"
)

func waitChanged(t *testing.T, h *punchlog.Handle) {
	t.Helper()
	select {
	case <-h.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal")
	}
}

func TestHandleSignalsInitialization(t *testing.T) {
	token := mintToken(t, "Ada", "ada@example.com", "USER")

	kc := keychain.NewMemory()
	require.NoError(t, kc.Set(token))

	store := punchlog.NewStore(&fakeGateway{}, kc)

	handle := punchlog.NewHandle(context.Background(), store)
	defer handle.Close()

	waitChanged(t, handle)

	snapshot := handle.Snapshot()
	assert.True(t, snapshot.IsAuthenticated)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "Ada", snapshot.User.Name)
}

func TestHandleTracksLoginAndLogout(t *testing.T) {
	gateway := &fakeGateway{
		loginFn: func(ctx context.Context, creds punchlog.Credentials) (*punchlog.LoginResponse, error) {
			return &punchlog.LoginResponse{
				Token: "issued-token",
				User:  punchlog.Profile{ID: "u1", Name: "Ada", Role: punchlog.RoleUser},
			}, nil
		},
	}

	store := punchlog.NewStore(gateway, keychain.NewMemory())

	handle := punchlog.NewHandle(context.Background(), store)
	defer handle.Close()

	// background Initialize on the empty slot
	waitChanged(t, handle)
	assert.False(t, handle.Snapshot().IsAuthenticated)

	result := handle.Login(context.Background(), punchlog.Credentials{Email: "a@b.co", Password: "x"})
	require.True(t, result.Success)

	waitChanged(t, handle)
	assert.True(t, handle.Snapshot().IsAuthenticated)
	assert.True(t, handle.HasRole(punchlog.RoleUser))

	handle.Logout()

	waitChanged(t, handle)
	assert.False(t, handle.Snapshot().IsAuthenticated)
}

func TestHandleCoalescesSignals(t *testing.T) {
	store := punchlog.NewStore(&fakeGateway{}, keychain.NewMemory())

	handle := punchlog.NewHandle(context.Background(), store)
	defer handle.Close()

	waitChanged(t, handle)

	// several changes with no reader in between collapse into one
	// pending signal; the snapshot observed afterwards is the latest
	store.Logout()
	store.Logout()
	store.Logout()

	waitChanged(t, handle)
	assert.False(t, handle.Snapshot().IsAuthenticated)

	select {
	case <-handle.Changed():
		// a second buffered signal may or may not exist depending on
		// timing; draining it must not block
	default:
	}
}

func TestHandleCloseStopsUpdates(t *testing.T) {
	gateway := &fakeGateway{
		loginFn: func(ctx context.Context, creds punchlog.Credentials) (*punchlog.LoginResponse, error) {
			return &punchlog.LoginResponse{
				Token: "issued-token",
				User:  punchlog.Profile{ID: "u1", Name: "Ada", Role: punchlog.RoleUser},
			}, nil
		},
	}

	store := punchlog.NewStore(gateway, keychain.NewMemory())

	handle := punchlog.NewHandle(context.Background(), store)
	waitChanged(t, handle)

	handle.Close()
	handle.Close() // second close is a no-op

	store.Login(context.Background(), punchlog.Credentials{Email: "a@b.co", Password: "x"})

	assert.False(t, handle.Snapshot().IsAuthenticated,
		"closed handle keeps its last snapshot")
}
