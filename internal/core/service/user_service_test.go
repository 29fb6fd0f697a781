package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

func TestUserList_AdminOnly(t *testing.T) {
	svc := NewUserService(seedUsers(), discardLogger)

	for _, actor := range []ports.Actor{staffActor, clientActor} {
		_, err := svc.List(context.Background(), actor, domain.RoleStaff)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("actor %s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

func TestUserList_PartitionedByRole(t *testing.T) {
	svc := NewUserService(seedUsers(), discardLogger)

	staff, err := svc.List(context.Background(), adminActor, domain.RoleStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(staff) != 2 {
		t.Errorf("expected 2 staff, got %d", len(staff))
	}
	for _, u := range staff {
		if u.Role != domain.RoleStaff {
			t.Errorf("staff roster contains %s user %s", u.Role, u.ID)
		}
	}

	clients, err := svc.List(context.Background(), adminActor, domain.RoleClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Errorf("expected 2 clients, got %d", len(clients))
	}
}

func TestUserCreate_AdminCreatesActiveStaff(t *testing.T) {
	repo := seedUsers()
	svc := NewUserService(repo, discardLogger)

	created, err := svc.Create(context.Background(), adminActor, ports.CreateUserInput{
		Name: "New Staff", Email: "new@eparcel.com", Password: "secret", Role: domain.RoleStaff,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.IsActive {
		t.Error("admin-created accounts must be active immediately")
	}
	if created.Role != domain.RoleStaff {
		t.Errorf("expected STAFF, got %s", created.Role)
	}
	if created.PasswordHash == "secret" {
		t.Error("plaintext password must never be stored")
	}
}

func TestUserCreate_AdminRoleNotCreatable(t *testing.T) {
	svc := NewUserService(seedUsers(), discardLogger)

	_, err := svc.Create(context.Background(), adminActor, ports.CreateUserInput{
		Name: "Second Admin", Email: "admin2@eparcel.com", Password: "x", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestUserCreate_NonAdminForbidden(t *testing.T) {
	svc := NewUserService(seedUsers(), discardLogger)

	_, err := svc.Create(context.Background(), staffActor, ports.CreateUserInput{
		Name: "X", Email: "x@eparcel.com", Password: "x", Role: domain.RoleClient,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestSetActive_TogglesLoginGate(t *testing.T) {
	repo := seedUsers()
	svc := NewUserService(repo, discardLogger)

	if err := svc.SetActive(context.Background(), adminActor, "u3", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := repo.FindByID(context.Background(), "u3")
	if !u.IsActive {
		t.Error("u3 should be active after toggle")
	}

	if err := svc.SetActive(context.Background(), staffActor, "u3", false); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("staff toggle: expected ErrForbidden, got %v", err)
	}

	if err := svc.SetActive(context.Background(), adminActor, "unknown", true); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown user: expected ErrUserNotFound, got %v", err)
	}
}
