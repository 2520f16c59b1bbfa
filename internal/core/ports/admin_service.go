package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
)

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Username string
	Email    string
}

// AdminService groups the operations reserved for the super-admin role.
// actorID is the authenticated administrator performing the call; it is
// used to forbid self-demotion and self-deletion.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	UpdateRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, targetID string) error
}
