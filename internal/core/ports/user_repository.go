package ports

import (
	"context"
	"time"

	"github.com/authcore/auth-service/internal/core/domain"
)

// UserRepository is the credential store: durable user records with an
// atomic uniqueness guarantee on create and atomic per-user updates.
type UserRepository interface {
	// Create inserts user and returns the stored record with its id set.
	// A duplicate email or username fails with domain.ErrUserExists; the
	// check-and-insert is atomic in every adapter.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error)
	// Delete soft-deletes the user; deleted users disappear from reads.
	Delete(ctx context.Context, id string) error
}

// TokenDenylist records revoked refresh-token ids until their natural
// expiry. Implementations must be safe for concurrent use.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
