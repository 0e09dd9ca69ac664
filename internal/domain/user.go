package domain

import (
	"fmt"
	"time"
)

// Role enumerates the access levels a user account can hold.
type Role string

const (
	RoleVisitor Role = "VISITOR"
	RoleEditor  Role = "EDITOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps a wire-level role string onto the closed enumeration.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleVisitor:
		return RoleVisitor, nil
	case RoleEditor:
		return RoleEditor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Valid reports whether the role is one of the three known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleVisitor, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for an account exposed over both protocol surfaces.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
