package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type teacherWriter interface {
	Ensure(ctx context.Context, email string) (*models.Teacher, error)
}

type studentWriter interface {
	Ensure(ctx context.Context, email string) (*models.Student, error)
}

type rosterLinker interface {
	Link(ctx context.Context, link models.TeacherStudent) error
}

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegistrationService registers students under a teacher. Every write is
// idempotent, so repeating a registration changes nothing.
type RegistrationService struct {
	teachers  teacherWriter
	students  studentWriter
	links     rosterLinker
	tx        transactor
	atomic    bool
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs a RegistrationService. When atomic is set
// and tx is non-nil each request runs in one transaction; otherwise rows are
// committed statement by statement.
func NewRegistrationService(teachers teacherWriter, students studentWriter, links rosterLinker, tx transactor, atomic bool, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		teachers:  teachers,
		students:  students,
		links:     links,
		tx:        tx,
		atomic:    atomic,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Register upserts the teacher and each student, then links them.
func (s *RegistrationService) Register(ctx context.Context, req dto.RegisterStudentsRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Missing teacher or students in request body.")
	}
	students := mergeUnique(req.Students)

	register := func(ctx context.Context) error {
		teacher, err := s.teachers.Ensure(ctx, req.Teacher)
		if err != nil {
			return err
		}
		for _, email := range students {
			student, err := s.students.Ensure(ctx, email)
			if err != nil {
				return err
			}
			if err := s.links.Link(ctx, models.TeacherStudent{TeacherID: teacher.ID, StudentID: student.ID}); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if s.atomic && s.tx != nil {
		err = s.tx.WithinTx(ctx, register)
	} else {
		err = register(ctx)
	}
	if err != nil {
		s.logger.Error("register students failed",
			zap.String("teacher", req.Teacher),
			zap.Int("students", len(students)),
			zap.Bool("atomic", s.atomic),
			zap.Error(err))
		return appErrors.Internal(err, "failed to register students")
	}

	s.metrics.RecordRegistration(len(students))
	_ = s.cache.Invalidate(ctx, rosterCachePattern(commonStudentsCacheKind), activeStudentsCacheKey(req.Teacher))
	return nil
}
