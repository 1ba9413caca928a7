package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines booking data access.
type Repository interface {
	// Create persists the booking. It re-checks the slot inside the
	// insert transaction and returns a *SlotConflictError if an active
	// booking overlaps.
	Create(ctx context.Context, b *Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// ListActiveByFieldAndDate returns pending and confirmed bookings
	// for the field on the given day, ordered by start time.
	ListActiveByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]Booking, error)

	ListByUser(ctx context.Context, userID uuid.UUID, req ListBookingsRequest) ([]Booking, int, error)

	// UpdateStatus persists a status change. Reason is stored as the
	// cancellation reason when non-nil; actor is recorded as the
	// cancelling user on cancellations.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string, actor uuid.UUID) error

	// CompletePastBookings marks confirmed bookings whose end time has
	// passed as completed. Returns the number of rows updated.
	CompletePastBookings(ctx context.Context, now time.Time) (int64, error)

	// StatsByUser aggregates booking counts and spend for the dashboard.
	StatsByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*DashboardResponse, error)
}
