package entity

import "github.com/google/uuid"

// Role is the authorization flag stored on a user profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the user record owned by the external identity service.
// Only the role is consulted by this service.
type Profile struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// IsAdmin reports whether the profile may manage content.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
