// Package server is the reference punchlog backend: the JSON API the
// client kit assumes, backed by bun/sqlite. It exists so the repo is
// self-contained for development and integration testing; production
// deployments may point the client at any implementation of the same
// wire protocol.
package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	punchlog "github.com/punchlog/go-punchlog"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID             uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           punchlog.Role `bun:"user_role,notnull" json:"role,omitempty"`
	Name           string        `bun:"name,notnull" json:"name,omitempty"`
	Email          string        `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string        `bun:"phone_number" json:"phone,omitempty"`
	PasswordHash   string        `bun:"password_hash" json:"-"`
	LoginAttempts  int           `bun:"login_attempts" json:"-"`
	LoginAttemptAt *time.Time    `bun:"login_attempt_at" json:"-"`
	LoggedInAt     *time.Time    `bun:"loggedin_at" json:"-"`
	CreatedAt      *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Profile maps the account to the wire shape the client decodes.
func (u *User) Profile() punchlog.Profile {
	return punchlog.Profile{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ClockRecord is one clock-in or clock-out event
type ClockRecord struct {
	bun.BaseModel `bun:"table:clock_records,alias:rec"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	User      *User      `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Type      string     `bun:"entry_type,notnull" json:"type,omitempty"`
	Date      string     `bun:"entry_date,notnull" json:"date,omitempty"`
	Time      string     `bun:"entry_time,notnull" json:"time,omitempty"`
	Status    string     `bun:"status,notnull,default:'pending'" json:"status,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Clock record entry types and review statuses. The wire values match
// what the client sends.
const (
	EntryClockIn  = "clock_in"
	EntryClockOut = "clock_out"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidEntryType checks the closed entry type set
func ValidEntryType(t string) bool {
	return t == EntryClockIn || t == EntryClockOut
}
