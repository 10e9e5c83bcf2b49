package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the roster endpoints on the given group.
func RegisterRoutes(group gin.IRouter, teachers *TeacherHandler, students *StudentHandler, notifications *NotificationHandler) {
	group.POST("/register", teachers.Register)
	group.GET("/commonstudents", teachers.CommonStudents)
	group.POST("/suspend", students.Suspend)
	group.POST("/retrievefornotifications", notifications.RetrieveRecipients)
}

// RegisterOpsRoutes mounts health, readiness and, when metricsPath is set,
// the Prometheus endpoint.
func RegisterOpsRoutes(r gin.IRouter, h *MetricsHandler, metricsPath string) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	if metricsPath != "" {
		r.GET(metricsPath, h.Prometheus)
	}
}
