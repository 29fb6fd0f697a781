package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies when creating a staff
// or client account. Accounts created this way are active immediately.
type CreateUserInput struct {
	Name            string
	Email           string
	Password        string
	Role            domain.Role
	AssignedClients []string
}

// UserService defines the admin-only account management use cases.
// Every method rejects non-admin actors with domain.ErrForbidden.
type UserService interface {
	// List returns the roster for a single target role (STAFF or CLIENT);
	// the management view is never mixed.
	List(ctx context.Context, actor Actor, role domain.Role) ([]*domain.User, error)
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	SetActive(ctx context.Context, actor Actor, userID string, isActive bool) error
}
