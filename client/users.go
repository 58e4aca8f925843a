package client

import (
	"context"
	"net/http"

	punchlog "github.com/punchlog/go-punchlog"
)

// Users is the client for the users resource area. Admin only except
// for ChangePassword.
type Users struct {
	*Client
}

// NewUsers returns a client rooted at {base}/users.
func NewUsers(base string, opts ...Option) *Users {
	return &Users{Client: New(base+"/users", opts...)}
}

// UserPayload is the create/update payload.
type UserPayload struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone,omitempty"`
	Role     punchlog.Role `json:"role"`
	Password string        `json:"password,omitempty"`
}

// All lists every user.
func (u *Users) All(ctx context.Context) ([]punchlog.Profile, error) {
	var out []punchlog.Profile
	if err := u.do(ctx, http.MethodGet, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one user.
func (u *Users) Get(ctx context.Context, id string) (*punchlog.Profile, error) {
	out := &punchlog.Profile{}
	if err := u.do(ctx, http.MethodGet, "/"+id, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a user.
func (u *Users) Create(ctx context.Context, payload UserPayload) (*punchlog.Profile, error) {
	out := &punchlog.Profile{}
	if err := u.do(ctx, http.MethodPost, "", nil, payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update edits a user.
func (u *Users) Update(ctx context.Context, id string, payload UserPayload) (*punchlog.Profile, error) {
	out := &punchlog.Profile{}
	if err := u.do(ctx, http.MethodPut, "/"+id, nil, payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a user.
func (u *Users) Delete(ctx context.Context, id string) error {
	return u.do(ctx, http.MethodDelete, "/"+id, nil, nil, nil)
}

// ChangePassword updates the authenticated user's password.
func (u *Users) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	return u.do(ctx, http.MethodPost, "/change-password", nil, payload, nil)
}
