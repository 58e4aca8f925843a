package server

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/nyaruka/phonenumbers"

	punchlog "github.com/punchlog/go-punchlog"
)

// RegisterUserMessage is the signup payload
type RegisterUserMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Password, validation.Required, validation.Length(8, 200)),
		validation.Field(&e.Phone, validation.By(validPhone)),
	)
}

// validPhone accepts an empty phone or anything phonenumbers can parse
// as a plausible number.
func validPhone(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}

	num, err := phonenumbers.Parse(raw, "ES")
	if err != nil {
		return err
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return goerrors.New("phone number is not possible", goerrors.CategoryValidation)
	}
	return nil
}

// RegisterUserHandler creates accounts. New users always start with
// the regular role; admins are promoted through the users API.
type RegisterUserHandler struct {
	users Users
}

// NewRegisterUserHandler returns the signup handler.
func NewRegisterUserHandler(users Users) *RegisterUserHandler {
	return &RegisterUserHandler{users: users}
}

// Execute validates the payload and creates the account. The user ID
// is derived from the email, so retried signups stay idempotent.
func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
	}

	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	email := strings.ToLower(strings.TrimSpace(event.Email))

	user := &User{
		Name:         strings.TrimSpace(event.Name),
		Email:        email,
		Phone:        strings.TrimSpace(event.Phone),
		PasswordHash: hash,
		Role:         punchlog.RoleUser,
	}

	if id, err := hashid.NewUUID(email); err == nil {
		user.ID = id
	}

	if user, err = h.users.Create(ctx, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return user, nil
}
