package domain

import (
	"errors"
	"time"
)

// Role is the single, mutually exclusive role assigned to a user at creation.
// Once set it is never changed.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleClient Role = "CLIENT"
)

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleClient
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an authenticated actor: an admin, a staff operator, or a client
// receiving parcels. IsActive gates login regardless of credential correctness.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"is_active"`
	// AssignedClients lists client ids a staff member handles. Informational
	// only: it is not applied as an access filter anywhere.
	AssignedClients []string  `json:"assigned_clients,omitempty"`
	Avatar          string    `json:"avatar,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
