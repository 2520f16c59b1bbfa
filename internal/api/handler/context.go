package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// principal is the authenticated identity injected by the Auth middleware.
type principal struct {
	UserID   string
	Username string
	Role     string
}

// ctxPrincipal extracts the principal and fast-fails when the middleware
// did not run: a non-empty user_id proves verification happened.
func ctxPrincipal(c echo.Context) (principal, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)

	return principal{UserID: userID, Username: username, Role: role}, nil
}
