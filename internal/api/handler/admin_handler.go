package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authcore/auth-service/internal/core/ports"
)

// AdminHandler serves the user-management routes. All of them sit behind
// the RBAC middleware requiring the super-admin role.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every non-deleted user without password hashes.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{Total: len(users), Users: users})
}

// GetUser returns a single user by id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.adminService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser provisions an account with an explicit role.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser changes a user's username and/or email.
//
// @Summary      Update a user's profile fields
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateRole assigns a new role to the target user. This route is the only
// role mutator in the service.
//
// @Summary      Update a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  updateRoleResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.UpdateRole(c.Request().Context(), p.UserID, c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateRoleResponse{
		Message: "user role updated successfully",
		User:    user,
	})
}

// DeleteUser soft-deletes the target user.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), p.UserID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}
