package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type studentSuspender interface {
	Suspend(ctx context.Context, email string) (int64, error)
}

// SuspensionService suspends students.
type SuspensionService struct {
	repo      studentSuspender
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSuspensionService constructs a SuspensionService.
func NewSuspensionService(repo studentSuspender, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SuspensionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuspensionService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Suspend flags the student as suspended. An email that matches no stored
// student is not an error.
func (s *SuspensionService) Suspend(ctx context.Context, req dto.SuspendStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing student in request body.")
	}

	affected, err := s.repo.Suspend(ctx, req.Student)
	if err != nil {
		s.logger.Error("suspend student failed", zap.String("student", req.Student), zap.Error(err))
		return appErrors.Internal(err, "failed to suspend student")
	}
	if affected == 0 {
		s.logger.Debug("suspend matched no student", zap.String("student", req.Student))
	}

	s.metrics.RecordSuspension(affected > 0)
	// Any teacher's cached roster may list the student.
	_ = s.cache.Invalidate(ctx, rosterCachePattern(activeStudentsCacheKind))
	return nil
}
