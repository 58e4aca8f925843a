package server

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	punchlog "github.com/punchlog/go-punchlog"
)

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*ClockRecord)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create table")
		}
	}

	return nil
}

// SeedAdmin ensures an admin account exists so a fresh install is
// usable. It is a no-op when the email is already registered.
func SeedAdmin(ctx context.Context, users Users, email, password string) (*User, error) {
	if user, err := users.GetByEmail(ctx, email); err == nil {
		return user, nil
	}

	handler := NewRegisterUserHandler(users)
	user, err := handler.Execute(ctx, RegisterUserMessage{
		Name:     "Administrator",
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	user.Role = punchlog.RoleAdmin
	return users.UpdateProfile(ctx, user)
}
