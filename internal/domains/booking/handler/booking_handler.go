package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"futsal-backend/internal/domains/booking"
	"futsal-backend/internal/domains/field"
	"futsal-backend/internal/shared/response"
	"futsal-backend/pkg/logger"
)

type BookingHandler struct {
	service booking.Service
}

func NewBookingHandler(service booking.Service) *BookingHandler {
	return &BookingHandler{service: service}
}

// CheckAvailability handles POST /customer/bookings/check-availability
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req booking.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Availability checked", result)
}

// Create handles POST /customer/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	userEmail := c.GetString("user_email")

	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, userEmail, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Booking created successfully", b)
}

// ListMyBookings handles GET /customer/bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req booking.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.ListMyBookings(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings retrieved successfully", result)
}

// GetDetail handles GET /customer/bookings/:id
func (h *BookingHandler) GetDetail(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Booking retrieved successfully", detail)
}

// Cancel handles PUT /customer/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), userID, bookingID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled successfully", b)
}

// UpdateStatus handles PUT /admin/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req booking.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), bookingID, actorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Booking status updated", b)
}

// Dashboard handles GET /customer/dashboard
func (h *BookingHandler) Dashboard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved successfully", stats)
}

// =====================================================
// HELPERS
// =====================================================

func getUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}

func (h *BookingHandler) handleError(c *gin.Context, err error) {
	var conflictErr *booking.SlotConflictError
	var transitionErr *booking.InvalidTransitionError
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &conflictErr):
		conflicts := make([]booking.ConflictInfo, 0, len(conflictErr.Conflicts))
		for _, b := range conflictErr.Conflicts {
			conflicts = append(conflicts, booking.ConflictInfo{
				BookingID: b.ID,
				StartAt:   b.StartAt,
				EndAt:     b.EndAt,
				Status:    b.Status,
			})
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, "BKG_001", "Time slot is already booked", conflicts)
	case errors.Is(err, booking.ErrBookingNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, booking.ErrAccessDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, booking.ErrNotCancellable),
		errors.Is(err, booking.ErrCancelTooLate):
		response.ErrorResponse(c, http.StatusBadRequest, "BKG_002", err.Error())
	case errors.As(err, &transitionErr):
		response.ErrorResponse(c, http.StatusBadRequest, "BKG_003", err.Error())
	case errors.Is(err, booking.ErrInvalidTimeRange),
		errors.Is(err, booking.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	case errors.Is(err, field.ErrFieldNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, field.ErrFieldUnavailable):
		response.ErrorResponse(c, http.StatusBadRequest, "FLD_002", err.Error())
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_001", "Validation failed", validationErrs)
	default:
		logger.Error("booking handler: unexpected error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
