package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-api/api/swagger"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/repository"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/cache"
	"github.com/noah-isme/classroom-api/pkg/config"
	"github.com/noah-isme/classroom-api/pkg/database"
	"github.com/noah-isme/classroom-api/pkg/logger"
)

// @title Classroom API
// @version 1.0.0
// @description Teacher and student roster administration with notification recipient resolution.
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(nil)
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			// The cache is optional; serve straight from the database.
			logr.Warn("redis unavailable, roster cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	teachers := repository.NewTeacherRepository(db, metricsSvc)
	students := repository.NewStudentRepository(db, metricsSvc)
	links := repository.NewTeacherStudentRepository(db, metricsSvc)
	validate := validator.New()

	registrationSvc := service.NewRegistrationService(teachers, students, links, repository.NewTransactor(db),
		cfg.Registration.Atomic, cacheSvc, metricsSvc, validate, logr)
	commonSvc := service.NewCommonStudentService(links, cacheSvc, logr)
	suspensionSvc := service.NewSuspensionService(students, cacheSvc, metricsSvc, validate, logr)
	notificationSvc := service.NewNotificationService(links, students, cacheSvc, metricsSvc, validate, logr)

	router := newRouter(cfg, logr, routerDeps{
		metrics:       metricsSvc,
		ops:           handler.NewMetricsHandler(metricsSvc, db),
		teachers:      handler.NewTeacherHandler(registrationSvc, commonSvc),
		students:      handler.NewStudentHandler(suspensionSvc),
		notifications: handler.NewNotificationHandler(notificationSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix, "atomic_registration", cfg.Registration.Atomic)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	logr.Info("server stopped")
}
