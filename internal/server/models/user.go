package models

import "time"

// Role determines what a user may do; see the policy package.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Status is the account lifecycle state. INACTIVE accounts cannot log in,
// but tokens issued before deactivation stay valid until they expire.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// User is a staff member or administrator. PasswordHash is a bcrypt hash and
// must never be serialized outbound.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
}

// Actor is the authenticated identity performing an operation. Every core
// operation takes an Actor explicitly; nothing reads it from ambient state.
type Actor struct {
	ID   string
	Role Role
}

// Actor derives the acting identity from a full user record.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff
}

// ValidStatus reports whether s is one of the known account states.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}
