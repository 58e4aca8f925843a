package punchlog

// Role is the user's role. The set is closed: authorization checks
// compare for exact equality, there is no hierarchy (an admin does not
// implicitly satisfy a "USER" requirement).
type Role string

const (
	// RoleUser is a regular user (records and reviews own entries)
	RoleUser Role = "USER"
	// RoleAdmin is an administrator (manages users and all entries)
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// AllRoles returns the closed role set
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin}
}
