package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/token"
)

type stubAuthService struct {
	registerResult *ports.AuthResult
	registerErr    error
	loginResult    *ports.AuthResult
	loginErr       error
	refreshResult  *ports.RefreshResult
	refreshErr     error

	lastRegister ports.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	s.lastRegister = in
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Refresh(context.Context, string) (*ports.RefreshResult, error) {
	return s.refreshResult, s.refreshErr
}

func jsonContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleResult() *ports.AuthResult {
	return &ports.AuthResult{
		User: &domain.User{
			ID:       "u1",
			Username: "alice",
			Email:    "alice@example.com",
			Role:     "User",
		},
		Tokens: &token.Pair{
			AccessToken:  "access.jwt",
			RefreshToken: "refresh.jwt",
			AccessExp:    time.Now().Add(15 * time.Minute),
			RefreshExp:   time.Now().Add(24 * time.Hour),
		},
	}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registerResult: sampleResult()}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastRegister.Email != "alice@example.com" {
		t.Fatalf("service received %+v", svc.lastRegister)
	}

	var body authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.AccessToken != "access.jwt" || body.RefreshToken != "refresh.jwt" {
		t.Fatalf("unexpected tokens: %+v", body)
	}
	if body.User == nil || body.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", body.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"missing email", `{"username":"alice","password":"pass123"}`},
		{"bad email", `{"username":"alice","email":"nope","password":"pass123"}`},
		{"short password", `{"username":"alice","email":"alice@example.com","password":"123"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuthService{registerResult: sampleResult()}
			h := NewAuthHandler(svc)

			c, _ := jsonContext(http.MethodPost, "/register", tc.body)

			err := h.Register(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
		})
	}
}

func TestAuthHandler_RegisterServiceErrorPassthrough(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	c, _ := jsonContext(http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passthrough, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{loginResult: sampleResult()}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginServiceErrorPassthrough(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := jsonContext(http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{refreshResult: &ports.RefreshResult{
		AccessToken:  "new.access",
		RefreshToken: "new.refresh",
	}}
	h := NewAuthHandler(svc)

	c, rec := jsonContext(http.MethodPost, "/refresh", `{"refresh_token":"old.refresh"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.AccessToken != "new.access" || body.RefreshToken != "new.refresh" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAuthHandler_RefreshMissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonContext(http.MethodPost, "/refresh", `{}`)

	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
