package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type activeStudentReader interface {
	ListActiveStudentEmails(ctx context.Context, teacherEmail string) ([]string, error)
}

type suspendedStudentReader interface {
	ListSuspendedEmails(ctx context.Context, emails []string) ([]string, error)
}

// NotificationService resolves who receives a teacher's notification: the
// teacher's registered students plus anyone @-mentioned, minus suspended students.
type NotificationService struct {
	roster    activeStudentReader
	students  suspendedStudentReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(roster activeStudentReader, students suspendedStudentReader, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{roster: roster, students: students, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Recipients returns the de-duplicated recipients, registered students first
// and then mentioned-only addresses, in first-seen order. Mentions of unknown
// addresses are kept; suspended students are always dropped.
func (s *NotificationService) Recipients(ctx context.Context, req dto.NotificationRequest) (*dto.NotificationRecipientsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing teacher or notification in request body.")
	}

	mentions := ExtractMentions(req.Notification)

	registered, cached, err := s.registeredStudents(ctx, req.Teacher)
	if err != nil {
		s.logger.Error("load registered students failed", zap.String("teacher", req.Teacher), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrInternal, "")
	}

	recipients := mergeUnique(registered, mentions)

	// A cached roster may predate a suspension, so every candidate is checked.
	candidates := mentions
	if cached {
		candidates = recipients
	}
	if len(candidates) > 0 {
		suspended, err := s.students.ListSuspendedEmails(ctx, mergeUnique(candidates))
		if err != nil {
			s.logger.Error("load suspended students failed", zap.Int("candidates", len(candidates)), zap.Error(err))
			return nil, appErrors.Clone(appErrors.ErrInternal, "")
		}
		recipients = without(recipients, suspended)
	}

	s.metrics.ObserveNotification(len(mentions), len(recipients))
	return &dto.NotificationRecipientsResponse{Recipients: recipients}, nil
}

// registeredStudents returns the teacher's non-suspended students as of the
// read and whether they came from the cache.
func (s *NotificationService) registeredStudents(ctx context.Context, teacher string) ([]string, bool, error) {
	cacheKey := activeStudentsCacheKey(teacher)
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit && cached != nil {
		return cached, true, nil
	}

	registered, err := s.roster.ListActiveStudentEmails(ctx, teacher)
	if err != nil {
		return nil, false, err
	}
	if registered == nil {
		registered = []string{}
	}
	_ = s.cache.Set(ctx, cacheKey, registered, 0)
	return registered, false, nil
}
