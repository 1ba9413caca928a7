package booking

import (
	"context"

	"github.com/google/uuid"
)

// Service defines booking business logic.
type Service interface {
	// CheckAvailability reports whether the requested slot is free and,
	// when it is not, which bookings occupy it.
	CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityResponse, error)

	// Create books the slot for the user. The price is snapshotted from
	// the field's rate for the booking date plus the admin fee.
	Create(ctx context.Context, userID uuid.UUID, userEmail string, req CreateBookingRequest) (*Booking, error)

	ListMyBookings(ctx context.Context, userID uuid.UUID, req ListBookingsRequest) (*ListBookingsResponse, error)

	// GetDetail returns the booking with its payment history. Customers
	// can only read their own bookings.
	GetDetail(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDetail, error)

	// Cancel cancels the user's own pending booking, provided the
	// cancellation cutoff has not passed.
	Cancel(ctx context.Context, userID, bookingID uuid.UUID, req CancelBookingRequest) (*Booking, error)

	// UpdateStatus is the admin-side status transition. The actor is
	// recorded on cancellations.
	UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, req UpdateStatusRequest) (*Booking, error)

	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)
}
