package field

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a field. Inactive fields are hidden from customers and
// cannot be booked.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Field is the futsal field entity. Read-only from the customer flow;
// rows are seeded/managed by admins.
type Field struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	Type        string    `db:"type" json:"type"` // e.g. indoor, outdoor, synthetic

	// Weekday price per slot; weekend price applies on Saturday/Sunday
	// when set.
	Price        decimal.Decimal  `db:"price" json:"price"`
	PriceWeekend *decimal.Decimal `db:"price_weekend" json:"price_weekend,omitempty"`

	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the field can be booked.
func (f *Field) IsActive() bool {
	return f.Status == StatusActive
}

// PriceFor returns the applicable price for a booking date:
// price_weekend on Saturday/Sunday when set, the weekday price otherwise.
func (f *Field) PriceFor(date time.Time) decimal.Decimal {
	wd := date.Weekday()
	if (wd == time.Saturday || wd == time.Sunday) && f.PriceWeekend != nil {
		return *f.PriceWeekend
	}
	return f.Price
}
