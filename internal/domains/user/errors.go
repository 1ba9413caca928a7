package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
)

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrEmptyUpdate  = errors.New("at least one field (name, email, or phone) must be provided")
)
