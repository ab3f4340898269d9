package domain

import (
	"errors"
	"time"
)

// Role is the closed set of portal roles. Unknown roles are rejected at
// user-creation time.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RoleFarmer Role = "farmer"
)

// ErrUnknownRole reports a role outside the closed set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleWorker, RoleFarmer:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }

// User is an account in the credential store. Immutable once created apart
// from profile edits handled elsewhere.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC encoded
	Role         Role
	FullName     string
	CreatedAt    time.Time
}

// FaceUserSummary pairs a user with the number of face enrollments stored
// for them, for the admin enrollment listing.
type FaceUserSummary struct {
	UserID    string
	Username  string
	FullName  string
	Role      Role
	FaceCount int64
}
