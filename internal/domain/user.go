package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// User is owned by the identity directory; this service only reads it.
type User struct {
	ID        uuid.UUID  `json:"id" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Role      UserRole   `json:"role" db:"role"`
	TeamID    *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Team struct {
	ID   uuid.UUID `json:"id" db:"team_id"`
	Name string    `json:"name" db:"name"`
}
