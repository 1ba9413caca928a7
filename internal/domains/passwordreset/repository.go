package passwordreset

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines reset token persistence.
type Repository interface {
	Create(ctx context.Context, t *Token) error
	FindByToken(ctx context.Context, token string) (*Token, error)

	// Consume marks the token used and stores the new password hash in
	// one transaction, so a failed password write leaves the token
	// usable. The token update only applies while the token is still
	// unused and unexpired; otherwise ErrTokenAlreadyUsed is returned
	// and nothing is written.
	Consume(ctx context.Context, token string, now time.Time, userID uuid.UUID, passwordHash string) error

	// DeleteExpired removes tokens past their expiry. Returns the
	// number of rows deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
