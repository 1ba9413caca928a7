package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"futsal-backend/internal/domains/passwordreset"
)

type postgresResetRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) passwordreset.Repository {
	return &postgresResetRepository{pool: pool}
}

func (r *postgresResetRepository) Create(ctx context.Context, t *passwordreset.Token) error {
	query := `
		INSERT INTO password_reset_tokens (token, user_id, email, used, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, t.Token, t.UserID, t.Email, t.Used, t.CreatedAt, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

func (r *postgresResetRepository) FindByToken(ctx context.Context, token string) (*passwordreset.Token, error) {
	query := `
		SELECT token, user_id, email, used, created_at, expires_at
		FROM password_reset_tokens
		WHERE token = $1`

	t := &passwordreset.Token{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&t.Token, &t.UserID, &t.Email, &t.Used, &t.CreatedAt, &t.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, passwordreset.ErrInvalidToken
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}
	return t, nil
}

// Consume burns the token and writes the new password hash in one
// transaction. The WHERE clause on the token update makes two
// concurrent resets with the same token impossible to both succeed,
// and a failed password write rolls the token back to usable.
func (r *postgresResetRepository) Consume(ctx context.Context, token string, now time.Time, userID uuid.UUID, passwordHash string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin consume tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > $2`,
		token, now)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return passwordreset.ErrTokenAlreadyUsed
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *postgresResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM password_reset_tokens WHERE expires_at <= $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
