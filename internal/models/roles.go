package models

import "time"

// Role constants
const (
	RoleMaker    = "Maker"
	RoleApprover = "Approver"
)

// Well-known user names
const (
	UserMaker    = "maker01"
	UserApprover = "approver01"
	UserSystem   = "system"
)

// TimestampLayout is the display format used for exports and audit details
const TimestampLayout = "2006-01-02 15:04:05"

// IsValidRole reports whether role is one of the two workflow roles
func IsValidRole(role string) bool {
	return role == RoleMaker || role == RoleApprover
}

// DefaultUserForRole returns the demo user bound to a role
func DefaultUserForRole(role string) string {
	if role == RoleApprover {
		return UserApprover
	}
	return UserMaker
}

// Actor identifies who performs an operation
type Actor struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// FormatTimestamp renders t in TimestampLayout, or "" for the zero time
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}
