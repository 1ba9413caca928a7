package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"futsal-backend/internal/domains/payment"
)

type postgresPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) payment.Repository {
	return &postgresPaymentRepository{pool: pool}
}

const paymentColumns = `id, booking_id, amount, method, status, reference, paid_at, created_at, updated_at`

func (r *postgresPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, method, status, reference, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.BookingID, p.Amount, p.Method, p.Status, p.Reference, p.PaidAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *postgresPaymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status,
			&p.Reference, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}
