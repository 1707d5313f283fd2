package model

import (
	"time"
)

// Role is the fixed three-role hierarchy: student < instructor < admin.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var roleOrder = map[Role]int{
	RoleStudent:    0,
	RoleInstructor: 1,
	RoleAdmin:      2,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleOrder[r]
	return ok
}

// AtLeast reports whether r sits at or above required in the role order.
// An unknown role is below every known one.
func (r Role) AtLeast(required Role) bool {
	ra, ok := roleOrder[r]
	if !ok {
		return false
	}
	rb, ok := roleOrder[required]
	if !ok {
		return false
	}
	return ra >= rb
}

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Not exposed
	Phone          string     `json:"phone,omitempty"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
