package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Role is written once at Create and never updated afterwards; no operation
// exists to change it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users, optionally restricted to a single role, in creation order.
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	SetActive(ctx context.Context, id string, isActive bool) error
}
