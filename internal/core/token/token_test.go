package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authcore/auth-service/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "User",
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", 15*time.Minute, 24*time.Hour)

	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(pair.AccessToken, TypeAccess)
	if err != nil {
		t.Fatalf("Verify(access) returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" || claims.Role != "User" {
		t.Fatalf("unexpected access claims: %+v", claims)
	}
	if claims.TokenType != TypeAccess {
		t.Fatalf("expected token_type access, got %q", claims.TokenType)
	}

	refreshClaims, err := issuer.Verify(pair.RefreshToken, TypeRefresh)
	if err != nil {
		t.Fatalf("Verify(refresh) returned error: %v", err)
	}
	if refreshClaims.UserID != "user-1" {
		t.Fatalf("unexpected refresh subject: %q", refreshClaims.UserID)
	}
	if refreshClaims.Role != "" {
		t.Fatalf("refresh token must not carry a role, got %q", refreshClaims.Role)
	}
	if refreshClaims.ID == "" || refreshClaims.ID != pair.RefreshID {
		t.Fatalf("expected refresh jti %q, got %q", pair.RefreshID, refreshClaims.ID)
	}
}

func TestIssuer_TypeSeparation(t *testing.T) {
	issuer := NewIssuer("secret", 15*time.Minute, 24*time.Hour)
	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(pair.RefreshToken, TypeAccess); !errors.Is(err, domain.ErrWrongTokenType) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := issuer.Verify(pair.AccessToken, TypeRefresh); !errors.Is(err, domain.ErrWrongTokenType) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
}

func TestIssuer_Expired(t *testing.T) {
	issuer := NewIssuer("secret", 15*time.Minute, 24*time.Hour)

	// Sign an already-expired token with the same secret: the signature is
	// valid, so only the exp check can reject it.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    "user-1",
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Verify(raw, TypeAccess); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestIssuer_InvalidSignature(t *testing.T) {
	issuer := NewIssuer("secret", 15*time.Minute, 24*time.Hour)
	other := NewIssuer("other-secret", 15*time.Minute, 24*time.Hour)

	pair, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(pair.AccessToken, TypeAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
	if _, err := issuer.Verify("not-a-token", TypeAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestIssuer_RejectsUnexpectedAlg(t *testing.T) {
	issuer := NewIssuer("secret", 15*time.Minute, 24*time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS384, Claims{
		UserID:    "user-1",
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Verify(raw, TypeAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS384 token, got %v", err)
	}
}
