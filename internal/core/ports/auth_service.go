package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// RegisterInput carries the fields a self-registering client submits.
// Role and active flag are not caller-controlled: registration always yields
// an inactive CLIENT account pending admin approval.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	// Login authenticates by email and returns a signed token plus the user.
	// Fails with domain.ErrInvalidCredentials or domain.ErrAccountInactive.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}
