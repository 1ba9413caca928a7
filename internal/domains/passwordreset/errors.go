package passwordreset

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired reset token")
	ErrTokenExpired     = errors.New("reset token has expired")
	ErrTokenAlreadyUsed = errors.New("reset token has already been used")
	ErrTooManyRequests  = errors.New("too many reset requests, please try again later")
	ErrAccountInactive  = errors.New("account is deactivated")
	ErrDeliveryFailed   = errors.New("failed to send reset email")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)
