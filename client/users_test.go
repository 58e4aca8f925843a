package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	punchlog "github.com/punchlog/go-punchlog"
	"github.com/punchlog/go-punchlog/client"
)

func TestUsersAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.Write([]byte(`[{"id":"u1","name":"Ada","email":"ada@example.com","role":"ADMIN"}]`))
	}))
	defer srv.Close()

	users := client.NewUsers(srv.URL)
	list, err := users.All(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, punchlog.RoleAdmin, list[0].Role)
}

func TestUsersCreateAndUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/users", r.URL.Path)
			assert.Equal(t, "USER", body["role"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"u2","name":"Bob","email":"bob@example.com","role":"USER"}`))
		case http.MethodPut:
			assert.Equal(t, "/users/u2", r.URL.Path)
			assert.Equal(t, "ADMIN", body["role"])
			w.Write([]byte(`{"id":"u2","name":"Bob","email":"bob@example.com","role":"ADMIN"}`))
		}
	}))
	defer srv.Close()

	users := client.NewUsers(srv.URL)

	created, err := users.Create(context.Background(), client.UserPayload{
		Name:     "Bob",
		Email:    "bob@example.com",
		Role:     punchlog.RoleUser,
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", created.ID)

	updated, err := users.Update(context.Background(), "u2", client.UserPayload{
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  punchlog.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, punchlog.RoleAdmin, updated.Role)
}

func TestUsersDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/u3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	users := client.NewUsers(srv.URL)
	assert.NoError(t, users.Delete(context.Background(), "u3"))
}

func TestUsersChangePassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/change-password", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-secret", body["oldPassword"])
		assert.Equal(t, "new-secret", body["newPassword"])

		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	users := client.NewUsers(srv.URL)
	assert.NoError(t, users.ChangePassword(context.Background(), "old-secret", "new-secret"))
}
