package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a payment record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// Payment records money movement against a booking.
type Payment struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	BookingID uuid.UUID       `db:"booking_id" json:"booking_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Method    string          `db:"method" json:"method"`
	Status    Status          `db:"status" json:"status"`
	Reference *string         `db:"reference" json:"reference,omitempty"`
	PaidAt    *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
