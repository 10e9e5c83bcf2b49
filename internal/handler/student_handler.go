package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type suspensionService interface {
	Suspend(ctx context.Context, req dto.SuspendStudentRequest) error
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	service suspensionService
}

// NewStudentHandler builds a new handler.
func NewStudentHandler(service suspensionService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Suspend godoc
// @Summary Suspend a student
// @Description Suspending an unknown email succeeds without effect.
// @Tags Students
// @Accept json
// @Param payload body dto.SuspendStudentRequest true "Suspension payload"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /suspend [post]
func (h *StudentHandler) Suspend(c *gin.Context) {
	var req dto.SuspendStudentRequest
	if err := bindJSON(c, &req, "invalid suspension payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Suspend(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
