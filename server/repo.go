package server

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the account repository
type Users interface {
	Raw(ctx context.Context, sql string, args ...any) ([]*User, error)
	Get(ctx context.Context, criteria ...repository.SelectCriteria) (*User, error)
	GetTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) (*User, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id string, criteria ...repository.SelectCriteria) (*User, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*User, int, error)
	ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*User, int, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	GetOrCreate(ctx context.Context, record *User) (*User, error)
	GetOrCreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
	GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*User, error)
	Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.UpdateCriteria) (*User, error)
	Upsert(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error)
	UpsertTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.UpdateCriteria) (*User, error)
	Delete(ctx context.Context, record *User) error
	DeleteTx(ctx context.Context, tx bun.IDB, record *User) error
	DeleteWhere(ctx context.Context, criteria ...repository.DeleteCriteria) error
	DeleteWhereTx(ctx context.Context, tx bun.IDB, criteria ...repository.DeleteCriteria) error
	ForceDelete(ctx context.Context, record *User) error
	ForceDeleteTx(ctx context.Context, tx bun.IDB, record *User) error
	Handlers() repository.ModelHandlers[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, user *User) (*User, error)
	Remove(ctx context.Context, id uuid.UUID) error

	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the account repository over the given DB.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("usr.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapRecordErr(err, "user not found")
	}
	return user, nil
}

func (r *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapRecordErr(err, "user not found")
	}
	return user, nil
}

func (r *users) ListAll(ctx context.Context) ([]*User, error) {
	var list []*User
	err := r.db.NewSelect().
		Model(&list).
		Order("usr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to list users")
	}
	return list, nil
}

func (r *users) UpdateProfile(ctx context.Context, user *User) (*User, error) {
	now := time.Now()
	user.UpdatedAt = &now

	_, err := r.db.NewUpdate().
		Model(user).
		Column("name", "email", "phone_number", "user_role", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "unable to update user")
	}
	return user, nil
}

func (r *users) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model(&User{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to delete user")
	}
	return nil
}

func (r *users) TrackAttemptedLogin(ctx context.Context, user *User) error {
	now := time.Now()
	user.LoginAttempts++
	user.LoginAttemptAt = &now

	_, err := r.db.NewUpdate().
		Model(user).
		Column("login_attempts", "login_attempt_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to track login attempt")
	}
	return nil
}

func (r *users) TrackSuccessfulLogin(ctx context.Context, user *User) error {
	now := time.Now()
	user.LoginAttempts = 0
	user.LoginAttemptAt = nil
	user.LoggedInAt = &now

	_, err := r.db.NewUpdate().
		Model(user).
		Column("login_attempts", "login_attempt_at", "loggedin_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to track login")
	}
	return nil
}

func (r *users) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.db.NewUpdate().
		Model(&User{ID: id, PasswordHash: hash}).
		Column("password_hash").
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to set password")
	}
	return nil
}

// ClockRecords is the clock-record repository
type ClockRecords interface {
	Raw(ctx context.Context, sql string, args ...any) ([]*ClockRecord, error)
	Get(ctx context.Context, criteria ...repository.SelectCriteria) (*ClockRecord, error)
	GetTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) (*ClockRecord, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id string, criteria ...repository.SelectCriteria) (*ClockRecord, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*ClockRecord, int, error)
	ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*ClockRecord, int, error)
	Create(ctx context.Context, record *ClockRecord) (*ClockRecord, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *ClockRecord) (*ClockRecord, error)
	GetOrCreate(ctx context.Context, record *ClockRecord) (*ClockRecord, error)
	GetOrCreateTx(ctx context.Context, tx bun.IDB, record *ClockRecord) (*ClockRecord, error)
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*ClockRecord, error)
	GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*ClockRecord, error)
	Update(ctx context.Context, record *ClockRecord, criteria ...repository.UpdateCriteria) (*ClockRecord, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *ClockRecord, criteria ...repository.UpdateCriteria) (*ClockRecord, error)
	Upsert(ctx context.Context, record *ClockRecord, criteria ...repository.UpdateCriteria) (*ClockRecord, error)
	UpsertTx(ctx context.Context, tx bun.IDB, record *ClockRecord, criteria ...repository.UpdateCriteria) (*ClockRecord, error)
	Delete(ctx context.Context, record *ClockRecord) error
	DeleteTx(ctx context.Context, tx bun.IDB, record *ClockRecord) error
	DeleteWhere(ctx context.Context, criteria ...repository.DeleteCriteria) error
	DeleteWhereTx(ctx context.Context, tx bun.IDB, criteria ...repository.DeleteCriteria) error
	ForceDelete(ctx context.Context, record *ClockRecord) error
	ForceDeleteTx(ctx context.Context, tx bun.IDB, record *ClockRecord) error
	Handlers() repository.ModelHandlers[*ClockRecord]

	ListForUser(ctx context.Context, userID uuid.UUID, filter RecordFilter) ([]*ClockRecord, error)
	ListAll(ctx context.Context, filter RecordFilter) ([]*ClockRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ClockRecord, error)
	UpdateRecord(ctx context.Context, record *ClockRecord) (*ClockRecord, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// RecordFilter narrows listings by date range and, for admin queries,
// user.
type RecordFilter struct {
	StartDate string
	EndDate   string
	UserID    uuid.UUID
}

type clockRecords struct {
	repository.Repository[*ClockRecord]
	db *bun.DB
}

var _ ClockRecords = (*clockRecords)(nil)

// NewClockRecordsRepository builds the clock-record repository.
func NewClockRecordsRepository(db *bun.DB) ClockRecords {
	repo := repository.NewRepository[*ClockRecord](db, repository.ModelHandlers[*ClockRecord]{
		NewRecord: func() *ClockRecord { return &ClockRecord{} },
		GetID: func(r *ClockRecord) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *ClockRecord, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &clockRecords{
		Repository: repo,
		db:         db,
	}
}

func (r *clockRecords) ListForUser(ctx context.Context, userID uuid.UUID, filter RecordFilter) ([]*ClockRecord, error) {
	filter.UserID = userID
	return r.ListAll(ctx, filter)
}

func (r *clockRecords) ListAll(ctx context.Context, filter RecordFilter) ([]*ClockRecord, error) {
	var list []*ClockRecord

	q := r.db.NewSelect().
		Model(&list).
		Order("rec.entry_date ASC", "rec.entry_time ASC")

	if filter.UserID != uuid.Nil {
		q = q.Where("rec.user_id = ?", filter.UserID)
	}
	if filter.StartDate != "" {
		q = q.Where("rec.entry_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("rec.entry_date <= ?", filter.EndDate)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to list clock records")
	}
	return list, nil
}

func (r *clockRecords) GetByID(ctx context.Context, id uuid.UUID) (*ClockRecord, error) {
	record := &ClockRecord{}
	err := r.db.NewSelect().
		Model(record).
		Where("rec.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapRecordErr(err, "clock record not found")
	}
	return record, nil
}

func (r *clockRecords) UpdateRecord(ctx context.Context, record *ClockRecord) (*ClockRecord, error) {
	now := time.Now()
	record.UpdatedAt = &now

	_, err := r.db.NewUpdate().
		Model(record).
		Column("entry_type", "entry_date", "entry_time", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to update clock record")
	}
	return record, nil
}

func (r *clockRecords) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model(&ClockRecord{ID: id}).
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to delete clock record")
	}
	return nil
}

// wrapRecordErr keeps sql.ErrNoRows distinguishable for handlers.
func wrapRecordErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, msg).WithCode(goerrors.CodeNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
