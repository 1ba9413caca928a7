package passwordreset

import (
	"time"

	"github.com/google/uuid"
)

// Token is a single-use password reset token. The token value is an
// opaque random string; it is the primary key, never the email.
type Token struct {
	Token     string    `db:"token" json:"-"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Email     string    `db:"email" json:"-"`
	Used      bool      `db:"used" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"-"`
}

// IsExpired reports whether the token's lifetime has passed. Expiry is
// checked independently of the used flag.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
