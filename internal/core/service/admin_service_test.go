package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/infrastructure/db/memory"
	"github.com/authcore/auth-service/internal/pkg/password"
)

func newTestAdminService(t *testing.T) (*AdminService, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	return NewAdminService(repo, testRoles(t), zerolog.Nop()), repo
}

func seedUser(t *testing.T, repo *memory.UserRepository, username, email, role string) *domain.User {
	t.Helper()
	hash, err := password.Hash("pass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestAdminService_UpdateRole_Canonicalizes(t *testing.T) {
	svc, repo := newTestAdminService(t)
	admin := seedUser(t, repo, "root", "root@example.com", "Super Admin")
	alice := seedUser(t, repo, "alice", "alice@example.com", "User")

	updated, err := svc.UpdateRole(context.Background(), admin.ID, alice.ID, "manager")
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if updated.Role != "Manager" {
		t.Fatalf("expected canonical role Manager, got %q", updated.Role)
	}
}

func TestAdminService_UpdateRole_Errors(t *testing.T) {
	svc, repo := newTestAdminService(t)
	admin := seedUser(t, repo, "root", "root@example.com", "Super Admin")
	alice := seedUser(t, repo, "alice", "alice@example.com", "User")

	if _, err := svc.UpdateRole(context.Background(), admin.ID, alice.ID, "Owner"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), admin.ID, admin.ID, "User"); !errors.Is(err, domain.ErrSelfRoleChange) {
		t.Fatalf("expected ErrSelfRoleChange, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), admin.ID, "missing-id", "User"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_UpdateRole_LastSuperAdminGuard(t *testing.T) {
	svc, repo := newTestAdminService(t)
	admin := seedUser(t, repo, "root", "root@example.com", "Super Admin")
	other := seedUser(t, repo, "root2", "root2@example.com", "Super Admin")
	actor := seedUser(t, repo, "actor", "actor@example.com", "Super Admin")

	// Demoting is fine while other super admins remain.
	if _, err := svc.UpdateRole(context.Background(), actor.ID, admin.ID, "User"); err != nil {
		t.Fatalf("demotion with peers failed: %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), actor.ID, other.ID, "User"); err != nil {
		t.Fatalf("second demotion failed: %v", err)
	}

	// actor is now the only super admin left; another actor cannot demote them.
	lone := seedUser(t, repo, "root3", "root3@example.com", "User")
	if _, err := svc.UpdateRole(context.Background(), lone.ID, actor.ID, "User"); !errors.Is(err, domain.ErrLastSuperAdmin) {
		t.Fatalf("expected ErrLastSuperAdmin, got %v", err)
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	svc, _ := newTestAdminService(t)

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "pass123",
		Role:     "manager",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Role != "Manager" {
		t.Fatalf("expected canonical role Manager, got %q", user.Role)
	}

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "mallory2", Email: "m2@example.com", Password: "pass123", Role: "Owner",
	}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	svc, repo := newTestAdminService(t)
	admin := seedUser(t, repo, "root", "root@example.com", "Super Admin")
	alice := seedUser(t, repo, "alice", "alice@example.com", "User")

	if err := svc.DeleteUser(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}

	if err := svc.DeleteUser(context.Background(), admin.ID, alice.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, err := svc.GetUser(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected deleted user to be invisible, got %v", err)
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	for _, u := range users {
		if u.ID == alice.ID {
			t.Fatalf("deleted user still listed")
		}
	}
}

func TestAdminService_UpdateUser(t *testing.T) {
	svc, repo := newTestAdminService(t)
	alice := seedUser(t, repo, "alice", "alice@example.com", "User")
	seedUser(t, repo, "bob", "bob@example.com", "User")

	if _, err := svc.UpdateUser(context.Background(), alice.ID, ports.UpdateUserInput{}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), alice.ID, ports.UpdateUserInput{Username: "alice2"})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Username != "alice2" || updated.Email != "alice@example.com" {
		t.Fatalf("expected partial update to preserve email, got %+v", updated)
	}

	if _, err := svc.UpdateUser(context.Background(), alice.ID, ports.UpdateUserInput{Email: "bob@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for taken email, got %v", err)
	}
}
