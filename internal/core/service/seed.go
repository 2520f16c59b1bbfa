package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/pkg/password"
)

// EnsureSuperAdmin creates the configured super-admin account if it does
// not exist yet. Called once at startup; a concurrent replica losing the
// create race is treated as success.
func EnsureSuperAdmin(ctx context.Context, repo ports.UserRepository, roles *domain.RoleSet, email, pass string, log zerolog.Logger) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Debug().Str("email", email).Msg("super admin already exists")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &domain.User{
		Username:     "superadmin",
		Email:        email,
		PasswordHash: hash,
		Role:         roles.SuperAdmin(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return err
	}

	log.Info().Str("email", email).Msg("super admin created")
	return nil
}
