package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile returns the authenticated user's record.
//
// @Summary      Get the current user's profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the old password and persists a new hash.
//
// @Summary      Change the current user's password
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new passwords"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), p.UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password changed successfully"})
}
