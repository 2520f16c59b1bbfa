package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/api/metrics"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/token"
)

// Auth validates the bearer access token and injects the principal into
// the echo context. It does no store I/O: the role comes from the verified
// claim, trading a short staleness window (bounded by the access TTL) for
// a lookup-free hot path.
func Auth(verifier *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1], token.TypeAccess)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrWrongTokenType):
		return "wrong_type"
	default:
		return "invalid"
	}
}
