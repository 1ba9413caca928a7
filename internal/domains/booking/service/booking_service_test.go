package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futsal-backend/internal/config"
	"futsal-backend/internal/domains/booking"
	"futsal-backend/internal/domains/field"
	"futsal-backend/internal/domains/payment"
	"futsal-backend/internal/infrastructure/email"
)

// =====================================================
// FAKES
// =====================================================

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var conflicts []booking.Booking
	for _, existing := range r.bookings {
		if existing.FieldID == b.FieldID && existing.IsActive() && existing.Overlaps(b.StartAt, b.EndAt) {
			conflicts = append(conflicts, *existing)
		}
	}
	if len(conflicts) > 0 {
		return &booking.SlotConflictError{Conflicts: conflicts}
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListActiveByFieldAndDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []booking.Booking
	for _, b := range r.bookings {
		if b.FieldID == fieldID && b.Date.Equal(date) && b.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, req booking.ListBookingsRequest) ([]booking.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []booking.Booking
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if req.Status != "" && string(b.Status) != req.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, reason *string, actor uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = status
	if reason != nil {
		b.CancellationReason = reason
	}
	if status == booking.StatusCancelled {
		b.CancelledBy = &actor
	}
	return nil
}

func (r *fakeBookingRepo) CompletePastBookings(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == booking.StatusConfirmed && !b.EndAt.After(now) {
			b.Status = booking.StatusCompleted
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) StatsByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*booking.DashboardResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &booking.DashboardResponse{TotalSpent: decimal.Zero}
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		stats.TotalBookings++
		switch {
		case b.IsActive() && b.StartAt.After(now):
			stats.UpcomingBookings++
		case b.Status == booking.StatusCompleted:
			stats.CompletedBookings++
		case b.Status == booking.StatusCancelled:
			stats.CancelledBookings++
		}
		if b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted {
			stats.TotalSpent = stats.TotalSpent.Add(b.TotalAmount)
		}
	}
	return stats, nil
}

type fakeFieldRepo struct {
	fields map[uuid.UUID]*field.Field
}

func (r *fakeFieldRepo) ListAvailable(ctx context.Context, req field.ListFieldsRequest) ([]field.Field, int, error) {
	return nil, 0, nil
}

func (r *fakeFieldRepo) FindByID(ctx context.Context, id uuid.UUID) (*field.Field, error) {
	f, ok := r.fields[id]
	if !ok {
		return nil, field.ErrFieldNotFound
	}
	return f, nil
}

type fakePaymentRepo struct{}

func (r *fakePaymentRepo) Create(ctx context.Context, p *payment.Payment) error { return nil }
func (r *fakePaymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]payment.Payment, error) {
	return nil, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent int
}

func (m *fakeMailer) SendResetPasswordEmail(ctx context.Context, data email.ResetPasswordData) error {
	return nil
}

func (m *fakeMailer) SendBookingConfirmationEmail(ctx context.Context, data email.BookingConfirmationData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
	return nil
}

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	svc     *bookingService
	repo    *fakeBookingRepo
	fieldID uuid.UUID
	userID  uuid.UUID
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	weekend := decimal.NewFromInt(200000)
	fieldID := uuid.New()
	fields := &fakeFieldRepo{fields: map[uuid.UUID]*field.Field{
		fieldID: {
			ID:           fieldID,
			Name:         "Arena A",
			Price:        decimal.NewFromInt(150000),
			PriceWeekend: &weekend,
			Status:       field.StatusActive,
		},
	}}

	repo := newFakeBookingRepo()
	cfg := config.BookingConfig{AdminFee: 5000, CancelCutoff: 2 * time.Hour}

	svc := NewBookingService(repo, fields, &fakePaymentRepo{}, &fakeMailer{}, cfg).(*bookingService)

	// Frozen clock: Monday 2026-09-07 08:00 local.
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	return &fixture{
		svc:     svc,
		repo:    repo,
		fieldID: fieldID,
		userID:  uuid.New(),
		now:     now,
	}
}

func createReq(f *fixture, date, start, end string) booking.CreateBookingRequest {
	return booking.CreateBookingRequest{
		FieldID:   f.fieldID.String(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Name:      "Andi",
		Phone:     "081234567890",
		Email:     "andi@example.com",
	}
}

// =====================================================
// TESTS
// =====================================================

func TestCreateBookingPricing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("weekday price plus admin fee", func(t *testing.T) {
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "18:00", "20:00"))
		require.NoError(t, err)

		assert.True(t, b.BaseAmount.Equal(decimal.NewFromInt(150000)), "base %s", b.BaseAmount)
		assert.True(t, b.AdminFee.Equal(decimal.NewFromInt(5000)))
		assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(155000)), "total %s", b.TotalAmount)
		assert.Equal(t, booking.StatusPending, b.Status)
	})

	t.Run("weekend price on saturday", func(t *testing.T) {
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-12", "18:00", "20:00"))
		require.NoError(t, err)

		assert.True(t, b.BaseAmount.Equal(decimal.NewFromInt(200000)))
		assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(205000)))
	})
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-08", "18:00", "20:00"))
	require.NoError(t, err)

	t.Run("overlapping slot rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, uuid.New(), "budi@example.com", createReq(f, "2026-09-08", "19:00", "21:00"))
		require.Error(t, err)
		assert.ErrorIs(t, err, booking.ErrSlotConflict)

		var conflictErr *booking.SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Len(t, conflictErr.Conflicts, 1)
	})

	t.Run("adjacent slot allowed", func(t *testing.T) {
		_, err := f.svc.Create(ctx, uuid.New(), "budi@example.com", createReq(f, "2026-09-08", "20:00", "22:00"))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-09", "10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, f.userID, b.ID, booking.CancelBookingRequest{})
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, uuid.New(), "budi@example.com", createReq(f, "2026-09-09", "10:00", "12:00"))
		assert.NoError(t, err)
	})
}

func TestCancelCutoff(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly at cutoff is allowed", func(t *testing.T) {
		f := newFixture(t)
		// Clock 08:00, cutoff 2h: a 10:00 start is cancellable.
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "10:00", "12:00"))
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(ctx, f.userID, b.ID, booking.CancelBookingRequest{Reason: "change of plans"})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "change of plans", *cancelled.CancellationReason)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, f.userID, *cancelled.CancelledBy)
	})

	t.Run("inside cutoff is rejected", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "10:00", "12:00"))
		require.NoError(t, err)

		// One second past the boundary.
		f.svc.now = func() time.Time { return f.now.Add(time.Second) }

		_, err = f.svc.Cancel(ctx, f.userID, b.ID, booking.CancelBookingRequest{})
		assert.ErrorIs(t, err, booking.ErrCancelTooLate)
	})

	t.Run("only owner can cancel", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, uuid.New(), b.ID, booking.CancelBookingRequest{})
		assert.ErrorIs(t, err, booking.ErrAccessDenied)
	})

	t.Run("confirmed booking is not customer-cancellable", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "10:00", "12:00"))
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, b.ID, uuid.New(), booking.UpdateStatusRequest{Status: booking.StatusConfirmed})
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, f.userID, b.ID, booking.CancelBookingRequest{})
		assert.ErrorIs(t, err, booking.ErrNotCancellable)
	})
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adminID := uuid.New()

	b, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-07", "10:00", "12:00"))
	require.NoError(t, err)

	t.Run("pending cannot complete directly", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, b.ID, adminID, booking.UpdateStatusRequest{Status: booking.StatusCompleted})
		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, booking.StatusPending, transitionErr.From)
	})

	t.Run("pending to confirmed to completed", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, b.ID, adminID, booking.UpdateStatusRequest{Status: booking.StatusConfirmed})
		require.NoError(t, err)

		updated, err := f.svc.UpdateStatus(ctx, b.ID, adminID, booking.UpdateStatusRequest{Status: booking.StatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, updated.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, b.ID, adminID, booking.UpdateStatusRequest{Status: booking.StatusCancelled})
		assert.Error(t, err)
	})

	t.Run("admin cancellation records the actor", func(t *testing.T) {
		b2, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-10", "10:00", "12:00"))
		require.NoError(t, err)

		cancelled, err := f.svc.UpdateStatus(ctx, b2.ID, adminID, booking.UpdateStatusRequest{Status: booking.StatusCancelled})
		require.NoError(t, err)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, adminID, *cancelled.CancelledBy)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "Cancelled by admin", *cancelled.CancellationReason)
	})
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.userID, "andi@example.com", createReq(f, "2026-09-08", "18:00", "20:00"))
	require.NoError(t, err)

	t.Run("free slot", func(t *testing.T) {
		resp, err := f.svc.CheckAvailability(ctx, booking.CheckAvailabilityRequest{
			FieldID: f.fieldID.String(), Date: "2026-09-08", StartTime: "08:00", EndTime: "10:00",
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("occupied slot reports conflicts", func(t *testing.T) {
		resp, err := f.svc.CheckAvailability(ctx, booking.CheckAvailabilityRequest{
			FieldID: f.fieldID.String(), Date: "2026-09-08", StartTime: "19:00", EndTime: "21:00",
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, booking.StatusPending, resp.Conflicts[0].Status)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := f.svc.CheckAvailability(ctx, booking.CheckAvailabilityRequest{
			FieldID: uuid.New().String(), Date: "2026-09-08", StartTime: "08:00", EndTime: "10:00",
		})
		assert.ErrorIs(t, err, field.ErrFieldNotFound)
	})
}
