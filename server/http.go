package server

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"

	punchlog "github.com/punchlog/go-punchlog"
)

// App wires the punchlog HTTP API onto a fiber application.
type App struct {
	Debug  bool
	Logger punchlog.Logger

	fiber   *fiber.App
	users   Users
	records ClockRecords
	auther  *Authenticator
	tokens  *TokenService
}

// AppOption configures the App
type AppOption func(*App) *App

// WithDebug enables request payload dumps.
func WithDebug(debug bool) AppOption {
	return func(a *App) *App {
		a.Debug = debug
		return a
	}
}

// WithAppLogger overrides the fallback logger.
func WithAppLogger(logger punchlog.Logger) AppOption {
	return func(a *App) *App {
		if logger != nil {
			a.Logger = logger
		}
		return a
	}
}

// NewApp builds the API around the given repositories and token
// service.
func NewApp(users Users, records ClockRecords, tokens *TokenService, opts ...AppOption) *App {
	a := &App{
		Logger:  DefaultLogger(),
		users:   users,
		records: records,
		tokens:  tokens,
		auther:  NewAuthenticator(users, tokens),
	}

	for _, opt := range opts {
		a = opt(a)
	}

	a.auther.WithLogger(a.Logger)

	a.fiber = fiber.New(fiber.Config{
		ErrorHandler: a.errorHandler,
	})
	a.routes()

	return a
}

// Fiber exposes the underlying application, mostly for tests.
func (a *App) Fiber() *fiber.App { return a.fiber }

// Listen serves the API on the given address.
func (a *App) Listen(addr string) error {
	a.Logger.Info("punchlog api listening", "addr", addr)
	return a.fiber.Listen(addr)
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown() error { return a.fiber.Shutdown() }

func (a *App) routes() {
	api := a.fiber.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", a.login)
	auth.Post("/register", a.register)
	auth.Get("/verify", Protected(a.tokens), a.verify)

	records := api.Group("/clock-records", Protected(a.tokens))
	records.Get("/", RequireRole(punchlog.RoleAdmin), a.listRecords)
	records.Get("/my-records", a.myRecords)
	records.Get("/summary", a.summary)
	records.Post("/", a.createRecord)
	records.Put("/:id", RequireRole(punchlog.RoleAdmin), a.updateRecord)
	records.Delete("/:id", RequireRole(punchlog.RoleAdmin), a.deleteRecord)

	users := api.Group("/users", Protected(a.tokens))
	users.Post("/change-password", a.changePassword)
	users.Get("/", RequireRole(punchlog.RoleAdmin), a.listUsers)
	users.Get("/:id", RequireRole(punchlog.RoleAdmin), a.getUser)
	users.Post("/", RequireRole(punchlog.RoleAdmin), a.createUser)
	users.Put("/:id", RequireRole(punchlog.RoleAdmin), a.updateUser)
	users.Delete("/:id", RequireRole(punchlog.RoleAdmin), a.deleteUser)
}

// errorHandler maps rich errors onto JSON responses with the
// {"error": message} shape the client expects.
func (a *App) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	if goerrors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		message = richErr.Message
		switch richErr.Category {
		case goerrors.CategoryAuth:
			status = fiber.StatusUnauthorized
		case goerrors.CategoryNotFound:
			status = fiber.StatusNotFound
		case goerrors.CategoryConflict:
			status = fiber.StatusConflict
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			status = fiber.StatusBadRequest
		}
	}

	if status >= fiber.StatusInternalServerError {
		a.Logger.Error("request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

// loginPayload is the sign-in body
type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

func (a *App) login(c *fiber.Ctx) error {
	payload := new(loginPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse login payload").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, user, err := a.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Profile(),
	})
}

func (a *App) register(c *fiber.Ctx) error {
	payload := RegisterUserMessage{}
	if err := c.BodyParser(&payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse registration payload").
			WithCode(goerrors.CodeBadRequest)
	}

	handler := NewRegisterUserHandler(a.users)
	user, err := handler.Execute(c.Context(), payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user.Profile())
}

func (a *App) verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (a *App) recordFilter(c *fiber.Ctx) RecordFilter {
	filter := RecordFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if raw := c.Query("userId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = id
		}
	}
	return filter
}

func (a *App) listRecords(c *fiber.Ctx) error {
	list, err := a.records.ListAll(c.Context(), a.recordFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (a *App) myRecords(c *fiber.Ctx) error {
	userID, ok := GetUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	filter := a.recordFilter(c)
	filter.UserID = uuid.Nil

	list, err := a.records.ListForUser(c.Context(), userID, filter)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (a *App) summary(c *fiber.Ctx) error {
	claims, ok := GetClaims(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	userID, _ := GetUserID(c)

	// admins may summarize any account
	if claims.UserRole == string(punchlog.RoleAdmin) {
		if raw := c.Query("userId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid userId").
					WithCode(goerrors.CodeBadRequest)
			}
			userID = id
		}
	}

	period := c.Query("period")
	start, end, err := PeriodRange(period, c.Query("startDate"), c.Query("endDate"), time.Now())
	if err != nil {
		return err
	}

	list, err := a.records.ListForUser(c.Context(), userID, RecordFilter{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}

	return c.JSON(Summarize(period, start, end, list))
}

// recordPayload is the clock record create/update body
type recordPayload struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func (p recordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Type, validation.Required, validation.In(EntryClockIn, EntryClockOut)),
		validation.Field(&p.Date, validation.Date(dateLayout)),
		validation.Field(&p.Status, validation.In(StatusPending, StatusApproved, StatusRejected)),
	)
}

func (a *App) createRecord(c *fiber.Ctx) error {
	userID, ok := GetUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	payload := new(recordPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse clock record").
			WithCode(goerrors.CodeBadRequest)
	}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	// date and time default to "now" when the client omits them
	now := time.Now()
	if payload.Date == "" {
		payload.Date = now.Format(dateLayout)
	}
	if payload.Time == "" {
		payload.Time = now.Format("15:04:05")
	}

	record := &ClockRecord{
		ID:     uuid.New(),
		UserID: userID,
		Type:   payload.Type,
		Date:   payload.Date,
		Time:   payload.Time,
		Status: StatusPending,
	}

	record, err := a.records.Create(c.Context(), record)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create clock record")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *App) updateRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid record id").
			WithCode(goerrors.CodeBadRequest)
	}

	payload := new(recordPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse clock record").
			WithCode(goerrors.CodeBadRequest)
	}

	record, err := a.records.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.Type != "" {
		if !ValidEntryType(payload.Type) {
			return goerrors.New("unknown entry type", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest)
		}
		record.Type = payload.Type
	}
	if payload.Date != "" {
		record.Date = payload.Date
	}
	if payload.Time != "" {
		record.Time = payload.Time
	}
	if payload.Status != "" {
		record.Status = payload.Status
	}

	record, err = a.records.UpdateRecord(c.Context(), record)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (a *App) deleteRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid record id").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := a.records.Remove(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (a *App) listUsers(c *fiber.Ctx) error {
	list, err := a.users.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (a *App) getUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid user id").
			WithCode(goerrors.CodeBadRequest)
	}

	user, err := a.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// userPayload is the admin user create/update body
type userPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (a *App) createUser(c *fiber.Ctx) error {
	payload := new(userPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse user payload").
			WithCode(goerrors.CodeBadRequest)
	}

	handler := NewRegisterUserHandler(a.users)
	user, err := handler.Execute(c.Context(), RegisterUserMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: payload.Password,
	})
	if err != nil {
		return err
	}

	if role := punchlog.Role(payload.Role); role.IsValid() && role != user.Role {
		user.Role = role
		if user, err = a.users.UpdateProfile(c.Context(), user); err != nil {
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (a *App) updateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid user id").
			WithCode(goerrors.CodeBadRequest)
	}

	payload := new(userPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse user payload").
			WithCode(goerrors.CodeBadRequest)
	}

	user, err := a.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.Phone != "" {
		user.Phone = payload.Phone
	}
	if payload.Role != "" {
		role := punchlog.Role(payload.Role)
		if !role.IsValid() {
			return goerrors.New("unknown role", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest)
		}
		user.Role = role
	}

	if user, err = a.users.UpdateProfile(c.Context(), user); err != nil {
		return err
	}

	if payload.Password != "" {
		hash, err := HashPassword(payload.Password)
		if err != nil {
			return err
		}
		if err := a.users.SetPasswordHash(c.Context(), user.ID, hash); err != nil {
			return err
		}
	}

	return c.JSON(user)
}

func (a *App) deleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid user id").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := a.users.Remove(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// changePasswordPayload carries the old and replacement password
type changePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (p changePasswordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OldPassword, validation.Required),
		validation.Field(&p.NewPassword, validation.Required, validation.Length(8, 200)),
	)
}

func (a *App) changePassword(c *fiber.Ctx) error {
	userID, ok := GetUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	payload := new(changePasswordPayload)
	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse password payload").
			WithCode(goerrors.CodeBadRequest)
	}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
	}

	user, err := a.users.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}

	if err := ComparePasswordAndHash(payload.OldPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err := a.users.SetPasswordHash(c.Context(), user.ID, hash); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"ok": true})
}
