package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"futsal-backend/internal/domains/passwordreset"
	"futsal-backend/internal/domains/passwordreset/service"
	"futsal-backend/internal/shared/response"
	"futsal-backend/pkg/logger"
)

type ResetHandler struct {
	service service.Service
}

func NewResetHandler(svc service.Service) *ResetHandler {
	return &ResetHandler{service: svc}
}

// RequestReset handles POST /auth/forgot-password
func (h *ResetHandler) RequestReset(c *gin.Context) {
	var req passwordreset.RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Request(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	// Same response whether or not the email exists.
	response.Success(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

// ValidateToken handles POST /auth/reset-password/validate
func (h *ResetHandler) ValidateToken(c *gin.Context) {
	var req passwordreset.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token is valid", result)
}

// ResetPassword handles POST /auth/reset-password
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	var req passwordreset.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Reset(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset successfully", nil)
}

func (h *ResetHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.Is(err, passwordreset.ErrTooManyRequests):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, passwordreset.ErrInvalidToken),
		errors.Is(err, passwordreset.ErrTokenExpired),
		errors.Is(err, passwordreset.ErrTokenAlreadyUsed):
		response.ErrorResponse(c, http.StatusBadRequest, "RST_001", err.Error())
	case errors.Is(err, passwordreset.ErrAccountInactive):
		response.Forbidden(c, err.Error())
	case errors.Is(err, passwordreset.ErrPasswordMismatch):
		response.BadRequest(c, err.Error())
	case errors.Is(err, passwordreset.ErrDeliveryFailed):
		response.InternalServerError(c, err.Error())
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_001", "Validation failed", validationErrs)
	default:
		logger.Error("reset handler: unexpected error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
