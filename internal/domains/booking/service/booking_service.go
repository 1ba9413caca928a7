package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futsal-backend/internal/config"
	"futsal-backend/internal/domains/booking"
	"futsal-backend/internal/domains/field"
	"futsal-backend/internal/domains/payment"
	"futsal-backend/internal/infrastructure/email"
	"futsal-backend/pkg/logger"
)

type bookingService struct {
	repo        booking.Repository
	fieldRepo   field.Repository
	paymentRepo payment.Repository
	mailer      email.EmailService
	cfg         config.BookingConfig

	// now is injectable for tests exercising the cancellation cutoff.
	now func() time.Time
}

func NewBookingService(
	repo booking.Repository,
	fieldRepo field.Repository,
	paymentRepo payment.Repository,
	mailer email.EmailService,
	cfg config.BookingConfig,
) booking.Service {
	return &bookingService{
		repo:        repo,
		fieldRepo:   fieldRepo,
		paymentRepo: paymentRepo,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// =====================================================
// AVAILABILITY
// =====================================================

func (s *bookingService) CheckAvailability(ctx context.Context, req booking.CheckAvailabilityRequest) (*booking.AvailabilityResponse, error) {
	// 1. Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slot, err := booking.ParseSlot(req.FieldID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 2. Field must exist and be bookable
	f, err := s.fieldRepo.FindByID(ctx, slot.FieldID)
	if err != nil {
		return nil, err
	}
	if !f.IsActive() {
		return nil, field.ErrFieldUnavailable
	}

	// 3. Compare against active bookings on that day
	conflicts, err := s.findConflicts(ctx, slot)
	if err != nil {
		return nil, err
	}

	resp := &booking.AvailabilityResponse{Available: len(conflicts) == 0}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, booking.ConflictInfo{
			BookingID: c.ID,
			StartAt:   c.StartAt,
			EndAt:     c.EndAt,
			Status:    c.Status,
		})
	}
	return resp, nil
}

func (s *bookingService) findConflicts(ctx context.Context, slot *booking.Slot) ([]booking.Booking, error) {
	active, err := s.repo.ListActiveByFieldAndDate(ctx, slot.FieldID, slot.Date)
	if err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}

	var conflicts []booking.Booking
	for _, b := range active {
		if b.Overlaps(slot.StartAt, slot.EndAt) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// =====================================================
// CREATE
// =====================================================

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, userEmail string, req booking.CreateBookingRequest) (*booking.Booking, error) {
	// 1. Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slot, err := booking.ParseSlot(req.FieldID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 2. Field must exist and be bookable
	f, err := s.fieldRepo.FindByID(ctx, slot.FieldID)
	if err != nil {
		return nil, err
	}
	if !f.IsActive() {
		return nil, field.ErrFieldUnavailable
	}

	// 3. Advisory conflict check. The repository re-checks inside the
	// insert transaction, so losing a race here is still safe.
	conflicts, err := s.findConflicts(ctx, slot)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &booking.SlotConflictError{Conflicts: conflicts}
	}

	// 4. Snapshot pricing for the booking date
	base := f.PriceFor(slot.Date)
	adminFee := decimal.NewFromInt(s.cfg.AdminFee)
	total := base.Add(adminFee)

	contactEmail := req.Email
	if contactEmail == "" {
		contactEmail = userEmail
	}
	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	b := &booking.Booking{
		UserID:      userID,
		FieldID:     slot.FieldID,
		Date:        slot.Date,
		StartAt:     slot.StartAt,
		EndAt:       slot.EndAt,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       contactEmail,
		Notes:       notes,
		BaseAmount:  base,
		AdminFee:    adminFee,
		TotalAmount: total,
		Status:      booking.StatusPending,
		CreatedBy:   userID,
	}

	// 5. Persist (authoritative conflict guard lives here)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// 6. Confirmation email is best-effort
	go s.sendConfirmation(b, f)

	logger.Info("Booking created", map[string]interface{}{
		"booking_id": b.ID.String(),
		"field_id":   b.FieldID.String(),
		"user_id":    b.UserID.String(),
		"start_at":   b.StartAt,
	})
	return b, nil
}

func (s *bookingService) sendConfirmation(b *booking.Booking, f *field.Field) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.mailer.SendBookingConfirmationEmail(ctx, email.BookingConfirmationData{
		Email:       b.Email,
		Name:        b.Name,
		FieldName:   f.Name,
		Date:        b.Date.Format("2006-01-02"),
		StartTime:   b.StartAt.Format("15:04"),
		EndTime:     b.EndAt.Format("15:04"),
		TotalAmount: b.TotalAmount.StringFixed(0),
	})
	if err != nil {
		logger.Warn("Failed to send booking confirmation email", map[string]interface{}{
			"booking_id": b.ID.String(),
			"error":      err.Error(),
		})
	}
}

// =====================================================
// READ
// =====================================================

func (s *bookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, req booking.ListBookingsRequest) (*booking.ListBookingsResponse, error) {
	req.SetDefaults()
	if req.Status != "" && !booking.Status(req.Status).IsValid() {
		return nil, booking.ErrInvalidStatus
	}

	bookings, total, err := s.repo.ListByUser(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("list my bookings: %w", err)
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	return &booking.ListBookingsResponse{
		Bookings: bookings,
		Pagination: booking.PaginationMeta{
			CurrentPage: req.Page,
			PerPage:     req.Limit,
			Total:       total,
			TotalPages:  totalPages,
		},
	}, nil
}

func (s *bookingService) GetDetail(ctx context.Context, userID, bookingID uuid.UUID) (*booking.BookingDetail, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, booking.ErrAccessDenied
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	return &booking.BookingDetail{Booking: b, Payments: payments}, nil
}

// =====================================================
// CANCEL / STATUS
// =====================================================

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID, req booking.CancelBookingRequest) (*booking.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Load and authorize
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, booking.ErrAccessDenied
	}

	// 2. Customers can only cancel bookings that are still pending
	if b.Status != booking.StatusPending {
		return nil, booking.ErrNotCancellable
	}

	// 3. Cutoff check. Cancelling exactly at the cutoff is allowed.
	if b.StartAt.Sub(s.now()) < s.cfg.CancelCutoff {
		return nil, booking.ErrCancelTooLate
	}

	// 4. Persist
	reason := req.Reason
	if reason == "" {
		reason = "Cancelled by customer"
	}
	if err := s.repo.UpdateStatus(ctx, bookingID, booking.StatusCancelled, &reason, userID); err != nil {
		return nil, err
	}

	b.Status = booking.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledBy = &userID

	logger.Info("Booking cancelled", map[string]interface{}{
		"booking_id": b.ID.String(),
		"user_id":    userID.String(),
	})
	return b, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, req booking.UpdateStatusRequest) (*booking.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.CanTransitionTo(req.Status) {
		return nil, &booking.InvalidTransitionError{From: b.Status, To: req.Status}
	}

	var reason *string
	if req.Status == booking.StatusCancelled {
		r := req.Reason
		if r == "" {
			r = "Cancelled by admin"
		}
		reason = &r
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, req.Status, reason, actorID); err != nil {
		return nil, err
	}

	b.Status = req.Status
	if reason != nil {
		b.CancellationReason = reason
		b.CancelledBy = &actorID
	}
	return b, nil
}

// =====================================================
// DASHBOARD
// =====================================================

func (s *bookingService) Dashboard(ctx context.Context, userID uuid.UUID) (*booking.DashboardResponse, error) {
	return s.repo.StatsByUser(ctx, userID, s.now())
}
