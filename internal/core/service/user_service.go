package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// UserService implements the admin-only account management use cases.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns the roster for a single target role. The STAFF and CLIENT
// rosters are managed as separate views and never mixed.
func (s *UserService) List(ctx context.Context, actor ports.Actor, role domain.Role) ([]*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if role != "" && !role.IsValid() {
		return nil, domain.ErrUserNotFound
	}
	return s.users.List(ctx, role)
}

// Create adds a staff or client account on behalf of an admin. Unlike
// self-registration, admin-created accounts are active immediately.
func (s *UserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Role != domain.RoleStaff && input.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    string(hash),
		Role:            input.Role,
		IsActive:        true,
		AssignedClients: input.AssignedClients,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// SetActive toggles the active flag, which gates login. Users are never hard
// deleted; deactivation is the only retirement mechanism.
func (s *UserService) SetActive(ctx context.Context, actor ports.Actor, userID string, isActive bool) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.users.SetActive(ctx, userID, isActive); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Bool("is_active", isActive).Msg("user status toggled")
	return nil
}
