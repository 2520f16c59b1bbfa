package handler

import "github.com/authcore/auth-service/internal/core/domain"

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
}

type updateUserRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type updateRoleResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type userListResponse struct {
	Total int            `json:"total"`
	Users []*domain.User `json:"users"`
}
