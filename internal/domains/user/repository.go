package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for users.
// An interface keeps the Postgres implementation swappable and mockable.
type Repository interface {
	// Create inserts a new user.
	// Returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail is used for login and password reset.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update persists profile changes.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// UpdateStatus activates/deactivates a user (admin action).
	UpdateStatus(ctx context.Context, userID uuid.UUID, isActive bool) error

	// ExistsByEmail checks registration uniqueness.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
