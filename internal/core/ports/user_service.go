package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
