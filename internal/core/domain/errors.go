package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrWrongTokenType     = errors.New("invalid token type")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrLastSuperAdmin     = errors.New("cannot remove the last super admin")
)
