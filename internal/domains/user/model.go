package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Admins are provisioned directly in the database; registration
// always produces a customer.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the domain entity, mapped 1:1 to the users table.
type User struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Email string    `db:"email" json:"email"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON
	Role         string `db:"role" json:"role"`

	// Profile
	Name  string  `db:"name" json:"name"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	IsActive bool `db:"is_active" json:"is_active"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ToDTO converts the entity to its public representation.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
