package passwordreset

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RequestResetRequest is the payload for POST /auth/forgot-password.
type RequestResetRequest struct {
	Email string `json:"email"`
}

func (r RequestResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ValidateTokenRequest is the payload for POST /auth/reset-password/validate.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

func (r ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// ResetPasswordRequest is the payload for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
}

// ValidateTokenResponse tells the reset form who the token belongs to
// and how long it stays valid.
type ValidateTokenResponse struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	ExpiresAt time.Time `json:"expires_at"`
}
