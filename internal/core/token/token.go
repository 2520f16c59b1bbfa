// Package token signs and verifies the JWT pair used for authentication.
// Access tokens are short-lived and carry the principal's role; refresh
// tokens are long-lived, carry only the subject id, and are tagged with a
// jti so they can be revoked individually.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/authcore/auth-service/internal/core/domain"
)

// Type discriminates access tokens from refresh tokens. The verifier
// enforces it: neither kind is ever accepted in place of the other.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims is the signed JWT payload. Refresh tokens omit username, email
// and role, forcing a store read when a new access token is minted.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType Type   `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	RefreshID    string
}

// Issuer mints and verifies HS256-signed tokens with a process-wide secret.
// It holds no mutable state and is safe for concurrent use.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue mints an access/refresh pair reflecting the user's current state.
func (i *Issuer) Issue(user *domain.User) (*Pair, error) {
	now := time.Now().UTC()

	accessExp := now.Add(i.accessTTL)
	access, err := i.sign(Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return nil, err
	}

	refreshExp := now.Add(i.refreshTTL)
	jti := uuid.NewString()
	refresh, err := i.sign(Claims{
		UserID:    user.ID,
		TokenType: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		RefreshID:    jti,
	}, nil
}

// IssueAccess mints a single access token, used by refresh when rotation
// is disabled.
func (i *Issuer) IssueAccess(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.accessTTL)
	raw, err := i.sign(Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, exp, nil
}

func (i *Issuer) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses raw, checks signature and expiry, and enforces the expected
// token type. Failures map to domain.ErrExpiredToken, domain.ErrInvalidToken
// or domain.ErrWrongTokenType.
func (i *Issuer) Verify(raw string, expected Type) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, domain.ErrWrongTokenType
	}
	return claims, nil
}
