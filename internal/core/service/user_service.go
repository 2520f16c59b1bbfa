package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/api/metrics"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/pkg/password"
)

// UserService implements the self-service operations available to any
// authenticated user.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ChangePassword verifies the old password before persisting a new hash.
// Already-issued access tokens stay valid until natural expiry.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}
	if len(newPassword) < password.MinLength {
		return domain.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	metrics.PasswordChangesTotal.Inc()
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
