package dto

// NotificationRequest asks which students should receive a notification.
type NotificationRequest struct {
	Teacher      string `json:"teacher" validate:"required"`
	Notification string `json:"notification" validate:"required"`
}

// NotificationRecipientsResponse lists the eligible recipients.
type NotificationRecipientsResponse struct {
	Recipients []string `json:"recipients"`
}
