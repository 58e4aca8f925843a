package punchlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	punchlog "github.com/punchlog/go-punchlog"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, punchlog.RoleUser.IsValid())
	assert.True(t, punchlog.RoleAdmin.IsValid())

	// the enumeration is closed and case sensitive
	assert.False(t, punchlog.Role("user").IsValid())
	assert.False(t, punchlog.Role("Admin").IsValid())
	assert.False(t, punchlog.Role("").IsValid())
	assert.False(t, punchlog.Role("ROOT").IsValid())
}

func TestAllRoles(t *testing.T) {
	assert.ElementsMatch(t,
		[]punchlog.Role{punchlog.RoleUser, punchlog.RoleAdmin},
		punchlog.AllRoles(),
	)
}
