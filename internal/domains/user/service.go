package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for the user domain.
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)

	// Admin
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, req UpdateStatusRequest) error
}
