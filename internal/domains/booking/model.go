package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a booking. Bookings are never deleted; cancellation is a
// status change.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsValid checks the status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that occupy a slot. Only these count
// for conflict detection.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// Booking is the reservation entity.
type Booking struct {
	ID      uuid.UUID `db:"id" json:"id"`
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
	FieldID uuid.UUID `db:"field_id" json:"field_id"`

	// Slot. Date is the calendar day; StartAt/EndAt are the concrete
	// timestamps of the half-open interval [StartAt, EndAt).
	Date    time.Time `db:"date" json:"date"`
	StartAt time.Time `db:"start_at" json:"start_at"`
	EndAt   time.Time `db:"end_at" json:"end_at"`

	// Contact details captured at booking time.
	Name  string  `db:"name" json:"name"`
	Phone string  `db:"phone" json:"phone"`
	Email string  `db:"email" json:"email"`
	Notes *string `db:"notes" json:"notes,omitempty"`

	// Pricing snapshot. TotalAmount = BaseAmount + AdminFee.
	BaseAmount  decimal.Decimal `db:"base_amount" json:"base_amount"`
	AdminFee    decimal.Decimal `db:"admin_fee" json:"admin_fee"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`

	Status             Status     `db:"status" json:"status"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedBy          uuid.UUID  `db:"created_by" json:"created_by"`
	CancelledBy        *uuid.UUID `db:"cancelled_by" json:"cancelled_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether the half-open interval [start, end) overlaps
// this booking's [StartAt, EndAt). Touching boundaries do not overlap:
// a booking ending exactly when another starts is not a conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndAt) && b.StartAt.Before(end)
}

// CanTransitionTo enforces the status state machine:
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
//	cancelled, completed are terminal
func (b *Booking) CanTransitionTo(next Status) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// CancellableUntil returns the latest instant at which the customer may
// still cancel, given the pre-start cutoff.
func (b *Booking) CancellableUntil(cutoff time.Duration) time.Time {
	return b.StartAt.Add(-cutoff)
}
