package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/config"
	reqidmiddleware "github.com/noah-isme/classroom-api/pkg/middleware/requestid"
)

type rosterStub struct{}

func (rosterStub) Register(context.Context, dto.RegisterStudentsRequest) error { return nil }

func (rosterStub) List(context.Context, dto.TeacherParam) (*dto.CommonStudentsResponse, error) {
	return &dto.CommonStudentsResponse{Students: []string{}}, nil
}

func (rosterStub) Suspend(context.Context, dto.SuspendStudentRequest) error { return nil }

func (rosterStub) Recipients(context.Context, dto.NotificationRequest) (*dto.NotificationRecipientsResponse, error) {
	return &dto.NotificationRecipientsResponse{Recipients: []string{"studentbob@gmail.com"}}, nil
}

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	stub := rosterStub{}
	return newRouter(cfg, zap.NewNop(), routerDeps{
		metrics:       metrics,
		ops:           handler.NewMetricsHandler(metrics, nil),
		teachers:      handler.NewTeacherHandler(stub, stub),
		students:      handler.NewStudentHandler(stub),
		notifications: handler.NewNotificationHandler(stub),
	})
}

func baseConfig() *config.Config {
	return &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api",
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterMountsRosterEndpoints(t *testing.T) {
	r := testRouter(baseConfig())

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/api/register", `{"teacher":"t@x.com","students":["s@x.com"]}`).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/commonstudents?teacher=t%40x.com", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/api/suspend", `{"student":"s@x.com"}`).Code)

	w := serve(r, http.MethodPost, "/api/retrievefornotifications", `{"teacher":"t@x.com","notification":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipients":["studentbob@gmail.com"]}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(reqidmiddleware.HeaderKey))
}

func TestRouterHonoursPrefix(t *testing.T) {
	cfg := baseConfig()
	cfg.APIPrefix = "/v2"
	r := testRouter(cfg)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/v2/commonstudents", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/commonstudents", "").Code)
}

func TestRouterOpsEndpoints(t *testing.T) {
	r := testRouter(baseConfig())

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ready", "").Code)

	serve(r, http.MethodGet, "/api/commonstudents", "")
	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/api/commonstudents"`)
}

func TestRouterMetricsDisabled(t *testing.T) {
	cfg := baseConfig()
	cfg.Metrics.Enabled = false
	r := testRouter(cfg)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics", "").Code)
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = config.EnvProduction
	r := testRouter(cfg)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/docs/index.html", "").Code)
}
