package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/api/metrics"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/token"
	"github.com/authcore/auth-service/internal/pkg/password"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	repo        ports.UserRepository
	issuer      *token.Issuer
	roles       *domain.RoleSet
	defaultRole string
	denylist    ports.TokenDenylist
	rotate      bool
	log         zerolog.Logger
}

// NewAuthService wires the credential store, token issuer and role set.
// defaultRole must resolve within roles. denylist may be nil, in which case
// refresh tokens cannot be revoked and rotation issues no revocations.
func NewAuthService(
	repo ports.UserRepository,
	issuer *token.Issuer,
	roles *domain.RoleSet,
	defaultRole string,
	denylist ports.TokenDenylist,
	rotate bool,
	log zerolog.Logger,
) (*AuthService, error) {
	canonical, err := roles.Resolve(defaultRole)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		repo:        repo,
		issuer:      issuer,
		roles:       roles,
		defaultRole: canonical,
		denylist:    denylist,
		rotate:      rotate,
		log:         log,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if len(in.Password) < password.MinLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         s.defaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.Issue(created)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{User: created, Tokens: pair}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both fail with domain.ErrInvalidCredentials so responses do not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.AuthResult, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user's role is re-read from the store so a role change since issuance
// takes effect immediately. With rotation enabled a replacement refresh
// token is issued and the presented one is revoked for its remaining life.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	claims, err := s.issuer.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, err
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Warn().Err(err).Msg("denylist check failed, rejecting refresh")
			return nil, err
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Subject no longer exists: the token is unusable, not "not found".
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !s.rotate {
		access, _, err := s.issuer.IssueAccess(user)
		if err != nil {
			return nil, err
		}
		metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
		return &ports.RefreshResult{AccessToken: access}, nil
	}

	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	if s.denylist != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
				s.log.Warn().Err(err).Str("jti", claims.ID).Msg("failed to revoke rotated refresh token")
			}
		}
	}

	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return &ports.RefreshResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}
