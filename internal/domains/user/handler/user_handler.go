package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"futsal-backend/internal/domains/user"
	"futsal-backend/internal/shared/response"
	"futsal-backend/pkg/logger"
)

// UserHandler translates HTTP requests into user.Service calls.
// Stateless - only holds dependencies.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/customer/profile")
	response.Success(c, http.StatusCreated, "User registered successfully", userDTO)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", loginResp)
}

// ========================================
// PROFILE ENDPOINTS (PROTECTED)
// ========================================

// GetProfile handles GET /customer/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /customer/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", updated)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// UpdateUserStatus handles PUT /admin/users/:id/status
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req user.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", err.Error())
		return
	}

	if err := h.service.UpdateUserStatus(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User status updated successfully", nil)
}

// ========================================
// HELPER FUNCTIONS
// ========================================

// getUserIDFromContext reads the user id set by the auth middleware.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID type in context")
	}

	return userID, nil
}

// handleError maps domain errors to HTTP responses.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrEmptyUpdate):
		response.BadRequest(c, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrUserInactive):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, user.ErrForbidden):
		response.Forbidden(c, err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	default:
		// Never leak internals to the client.
		logger.Error("user handler: unexpected error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
