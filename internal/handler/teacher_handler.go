package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, req dto.RegisterStudentsRequest) error
}

type commonStudentService interface {
	List(ctx context.Context, param dto.TeacherParam) (*dto.CommonStudentsResponse, error)
}

// TeacherHandler exposes the teacher-facing roster endpoints.
type TeacherHandler struct {
	registration registrationService
	common       commonStudentService
}

// NewTeacherHandler builds a new handler.
func NewTeacherHandler(registration registrationService, common commonStudentService) *TeacherHandler {
	return &TeacherHandler{registration: registration, common: common}
}

// Register godoc
// @Summary Register students to a teacher
// @Description Creates the teacher and students when absent and links them. Repeating a registration is harmless.
// @Tags Teachers
// @Accept json
// @Param payload body dto.RegisterStudentsRequest true "Registration payload"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /register [post]
func (h *TeacherHandler) Register(c *gin.Context) {
	var req dto.RegisterStudentsRequest
	if err := bindJSON(c, &req, "invalid registration payload"); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.registration.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CommonStudents godoc
// @Summary List students common to every given teacher
// @Tags Teachers
// @Produce json
// @Param teacher query []string true "Teacher email, repeatable" collectionFormat(multi)
// @Success 200 {object} dto.CommonStudentsResponse
// @Failure 500 {object} response.ErrorBody
// @Router /commonstudents [get]
func (h *TeacherHandler) CommonStudents(c *gin.Context) {
	param := dto.TeacherParamFromQuery(c.QueryArray("teacher"))
	resp, err := h.common.List(c.Request.Context(), param)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
