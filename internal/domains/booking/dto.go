package booking

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futsal-backend/internal/domains/payment"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookingRequest is the payload for POST /customer/bookings.
type CreateBookingRequest struct {
	FieldID   string `json:"field_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

func (r CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FieldID, validation.Required, is.UUIDv4),
		validation.Field(&r.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.StartTime, validation.Required, validation.Date(timeLayout)),
		validation.Field(&r.EndTime, validation.Required, validation.Date(timeLayout)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Phone, validation.Required, validation.Length(8, 20)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Notes, validation.Length(0, 500)),
	)
}

// CheckAvailabilityRequest is the payload for POST /customer/bookings/check-availability.
type CheckAvailabilityRequest struct {
	FieldID   string `json:"field_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r CheckAvailabilityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FieldID, validation.Required, is.UUIDv4),
		validation.Field(&r.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.StartTime, validation.Required, validation.Date(timeLayout)),
		validation.Field(&r.EndTime, validation.Required, validation.Date(timeLayout)),
	)
}

// Slot resolves the request's date/time strings into concrete
// timestamps in the server's location. Midnight end time is treated as
// the end of the requested day.
type Slot struct {
	FieldID uuid.UUID
	Date    time.Time
	StartAt time.Time
	EndAt   time.Time
}

func ParseSlot(fieldID, date, startTime, endTime string) (*Slot, error) {
	fid, err := uuid.Parse(fieldID)
	if err != nil {
		return nil, err
	}
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, err
	}
	st, err := time.ParseInLocation(timeLayout, startTime, time.Local)
	if err != nil {
		return nil, err
	}
	et, err := time.ParseInLocation(timeLayout, endTime, time.Local)
	if err != nil {
		return nil, err
	}

	startAt := time.Date(d.Year(), d.Month(), d.Day(), st.Hour(), st.Minute(), 0, 0, time.Local)
	endAt := time.Date(d.Year(), d.Month(), d.Day(), et.Hour(), et.Minute(), 0, 0, time.Local)
	if et.Hour() == 0 && et.Minute() == 0 {
		endAt = endAt.AddDate(0, 0, 1)
	}
	if !startAt.Before(endAt) {
		return nil, ErrInvalidTimeRange
	}

	return &Slot{FieldID: fid, Date: d, StartAt: startAt, EndAt: endAt}, nil
}

// CancelBookingRequest is the payload for PUT /customer/bookings/:id/cancel.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (r CancelBookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

// UpdateStatusRequest is the admin payload for PUT /bookings/:id/status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			if s, ok := value.(Status); !ok || !s.IsValid() {
				return ErrInvalidStatus
			}
			return nil
		})),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

// ListBookingsRequest filters GET /customer/bookings.
type ListBookingsRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *ListBookingsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 10
	}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

type ListBookingsResponse struct {
	Bookings   []Booking      `json:"bookings"`
	Pagination PaginationMeta `json:"pagination"`
}

// AvailabilityResponse is the conflict-check result. Available is the
// inverse of any overlapping active booking existing.
type AvailabilityResponse struct {
	Available bool           `json:"available"`
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
}

// ConflictInfo exposes only the slot of a conflicting booking, never
// the other customer's contact details.
type ConflictInfo struct {
	BookingID uuid.UUID `json:"booking_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    Status    `json:"status"`
}

// BookingDetail is a booking joined with its payment history.
type BookingDetail struct {
	Booking  *Booking          `json:"booking"`
	Payments []payment.Payment `json:"payments"`
}

// DashboardResponse summarizes a customer's bookings.
type DashboardResponse struct {
	TotalBookings     int             `json:"total_bookings"`
	UpcomingBookings  int             `json:"upcoming_bookings"`
	CompletedBookings int             `json:"completed_bookings"`
	CancelledBookings int             `json:"cancelled_bookings"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	RecentBookings    []Booking       `json:"recent_bookings"`
}
