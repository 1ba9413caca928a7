package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"futsal-backend/internal/domains/booking"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) booking.Repository {
	return &postgresBookingRepository{pool: pool}
}

const bookingColumns = `id, user_id, field_id, date, start_at, end_at, name, phone, email, notes,
	base_amount, admin_fee, total_amount, status, cancellation_reason, created_by, cancelled_by, created_at, updated_at`

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	b := &booking.Booking{}
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.FieldID,
		&b.Date,
		&b.StartAt,
		&b.EndAt,
		&b.Name,
		&b.Phone,
		&b.Email,
		&b.Notes,
		&b.BaseAmount,
		&b.AdminFee,
		&b.TotalAmount,
		&b.Status,
		&b.CancellationReason,
		&b.CreatedBy,
		&b.CancelledBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return b, nil
}

// exclusionViolation is the Postgres error code raised by the
// bookings_no_overlap constraint.
const exclusionViolation = "23P01"

func (r *postgresBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Re-check inside the transaction. The row lock serializes two
	// concurrent bookings touching the same existing rows; the
	// exclusion constraint below catches the case where neither sees
	// the other's uncommitted insert.
	conflicts, err := r.overlapping(ctx, tx, b.FieldID, b.StartAt, b.EndAt, true)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &booking.SlotConflictError{Conflicts: conflicts}
	}

	now := time.Now()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO bookings (
			id, user_id, field_id, date, start_at, end_at, name, phone, email, notes,
			base_amount, admin_fee, total_amount, status, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = tx.Exec(ctx, query,
		b.ID, b.UserID, b.FieldID, b.Date, b.StartAt, b.EndAt,
		b.Name, b.Phone, b.Email, b.Notes,
		b.BaseAmount, b.AdminFee, b.TotalAmount,
		b.Status, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return &booking.SlotConflictError{}
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return &booking.SlotConflictError{}
		}
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func (r *postgresBookingRepository) overlapping(ctx context.Context, q querier, fieldID uuid.UUID, start, end time.Time, forUpdate bool) ([]booking.Booking, error) {
	// Half-open overlap: start < existing.end AND existing.start < end.
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE field_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND $2 < end_at
		  AND start_at < $3
		ORDER BY start_at ASC`, bookingColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, fieldID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query overlapping bookings: %w", err)
	}
	defer rows.Close()

	var conflicts []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlapping bookings: %w", err)
	}
	return conflicts, nil
}

func (r *postgresBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresBookingRepository) ListActiveByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE field_id = $1
		  AND date = $2
		  AND status IN ('pending', 'confirmed')
		ORDER BY start_at ASC`

	rows, err := r.pool.Query(ctx, query, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active bookings: %w", err)
	}
	return bookings, nil
}

func (r *postgresBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, req booking.ListBookingsRequest) ([]booking.Booking, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	argPos := 2

	if req.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, req.Status)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM bookings ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM bookings %s ORDER BY start_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, argPos, argPos+1,
	)
	offset := (req.Page - 1) * req.Limit
	args = append(args, req.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *postgresBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, reason *string, actor uuid.UUID) error {
	var cancelledBy *uuid.UUID
	if status == booking.StatusCancelled {
		cancelledBy = &actor
	}

	query := `
		UPDATE bookings
		SET status = $2,
		    cancellation_reason = COALESCE($3, cancellation_reason),
		    cancelled_by = COALESCE($4, cancelled_by),
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, reason, cancelledBy)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *postgresBookingRepository) CompletePastBookings(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND end_at <= $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresBookingRepository) StatsByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*booking.DashboardResponse, error) {
	stats := &booking.DashboardResponse{}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed') AND start_at > $2),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('confirmed', 'completed')), 0)
		FROM bookings
		WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID, now).Scan(
		&stats.TotalBookings,
		&stats.UpcomingBookings,
		&stats.CompletedBookings,
		&stats.CancelledBookings,
		&stats.TotalSpent,
	)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}

	recentQuery := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 5`

	rows, err := r.pool.Query(ctx, recentQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		stats.RecentBookings = append(stats.RecentBookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent bookings: %w", err)
	}
	return stats, nil
}
