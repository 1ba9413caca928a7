package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"futsal-backend/internal/domains/field"
	"futsal-backend/internal/shared/response"
	"futsal-backend/pkg/logger"
)

type FieldHandler struct {
	service field.Service
}

func NewFieldHandler(service field.Service) *FieldHandler {
	return &FieldHandler{service: service}
}

// ListFields handles GET /customer/fields
// Query params: ?search=&type=&location=&page=&limit=
func (h *FieldHandler) ListFields(c *gin.Context) {
	var req field.ListFieldsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.ListFields(c.Request.Context(), req)
	if err != nil {
		logger.Error("field handler: list fields", err)
		response.InternalServerError(c, "Failed to get fields")
		return
	}

	response.Success(c, http.StatusOK, "Fields retrieved successfully", result)
}

// GetField handles GET /customer/fields/:id
func (h *FieldHandler) GetField(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid field ID")
		return
	}

	f, err := h.service.GetField(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, field.ErrFieldNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("field handler: get field", err)
		response.InternalServerError(c, "Failed to get field")
		return
	}

	response.Success(c, http.StatusOK, "Field retrieved successfully", f)
}
