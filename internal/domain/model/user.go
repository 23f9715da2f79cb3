package model

import (
	"time"
)

const (
	RoleUser   = "user"
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleViewer, RoleAdmin:
		return true
	}
	return false
}

// RoleAllowed is the role-gate predicate: true when the user's role is a
// member of allowed.
func RoleAllowed(user *User, allowed ...string) bool {
	if user == nil {
		return false
	}
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
