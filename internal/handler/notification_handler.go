package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type notificationService interface {
	Recipients(ctx context.Context, req dto.NotificationRequest) (*dto.NotificationRecipientsResponse, error)
}

// NotificationHandler resolves notification recipients.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler builds a new handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RetrieveRecipients godoc
// @Summary Retrieve students who can receive a notification
// @Description Registered students of the teacher plus @-mentioned students, excluding suspended students.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body dto.NotificationRequest true "Notification payload"
// @Success 200 {object} dto.NotificationRecipientsResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /retrievefornotifications [post]
func (h *NotificationHandler) RetrieveRecipients(c *gin.Context) {
	var req dto.NotificationRequest
	if err := bindJSON(c, &req, "Missing teacher or notification in request body."); err != nil {
		response.Error(c, err)
		return
	}
	resp, err := h.service.Recipients(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
