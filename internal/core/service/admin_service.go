package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/api/metrics"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/pkg/password"
)

// AdminService implements the super-admin-only user management operations.
// Role membership is enforced upstream by the RBAC middleware; this layer
// enforces the remaining invariants (valid roles, no self-demotion, at
// least one super admin at all times).
type AdminService struct {
	repo  ports.UserRepository
	roles *domain.RoleSet
	log   zerolog.Logger
}

func NewAdminService(repo ports.UserRepository, roles *domain.RoleSet, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, roles: roles, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser provisions an account with an explicit role, unlike Register
// which always applies the configured default.
func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrMissingFields
	}
	if len(in.Password) < password.MinLength {
		return nil, domain.ErrWeakPassword
	}

	role, err := s.roles.Resolve(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created by admin")
	return created, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username == "" && in.Email == "" {
		return nil, domain.ErrMissingFields
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := in.Username
	if username == "" {
		username = current.Username
	}
	email := in.Email
	if email == "" {
		email = current.Email
	}

	return s.repo.UpdateProfile(ctx, id, username, email)
}

// UpdateRole is the only mutator of a user's role. The new role must be a
// member of the configured set; it is stored with canonical casing.
func (s *AdminService) UpdateRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error) {
	canonical, err := s.roles.Resolve(role)
	if err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, domain.ErrSelfRoleChange
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	superAdmin := s.roles.SuperAdmin()
	if target.Role == superAdmin && canonical != superAdmin {
		if err := s.ensureAnotherSuperAdmin(ctx, targetID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, canonical)
	if err != nil {
		return nil, err
	}

	metrics.RoleUpdatesTotal.Inc()
	s.log.Info().
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Str("old_role", target.Role).
		Str("new_role", canonical).
		Msg("user role updated")

	return updated, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.log.Info().Str("actor_id", actorID).Str("user_id", targetID).Msg("user deleted")
	return nil
}

// ensureAnotherSuperAdmin fails with ErrLastSuperAdmin when no super admin
// other than excludeID exists.
func (s *AdminService) ensureAnotherSuperAdmin(ctx context.Context, excludeID string) error {
	users, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	superAdmin := s.roles.SuperAdmin()
	for _, u := range users {
		if u.ID != excludeID && u.Role == superAdmin {
			return nil
		}
	}
	return domain.ErrLastSuperAdmin
}
