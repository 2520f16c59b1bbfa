package ports

import (
	"context"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/token"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult carries the stored user and the freshly issued token pair.
type AuthResult struct {
	User   *domain.User
	Tokens *token.Pair
}

// RefreshResult carries a new access token and, when rotation is enabled,
// a replacement refresh token.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
}
