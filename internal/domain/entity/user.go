package entity

import (
	"time"
)

// User is the identity aggregate root.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID          int64
	Email       string
	Password    string
	Role        Role
	SuspendedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is a coarse authorization tier on User. It is orthogonal to the
// session guard but used as an additional login filter: the member login
// path only accepts RoleMember.
type Role int16

const (
	RoleMember Role = 10
	RoleAdmin  Role = 99
)

// Label returns the display string for the role.
func (r Role) Label() string {
	switch r {
	case RoleMember:
		return "一般ユーザー"
	case RoleAdmin:
		return "管理者"
	default:
		return ""
	}
}

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}
