package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines payment data access.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Payment, error)
}
