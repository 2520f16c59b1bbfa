package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/core/domain"
)

// RBAC enforces role-based access control. Roles were canonicalised before
// token issuance, so membership is an exact-match set lookup. Runs after
// Auth; a missing role claim denies.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
