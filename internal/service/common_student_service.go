package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type commonStudentReader interface {
	ListCommonStudentEmails(ctx context.Context, teacherEmails []string) ([]string, error)
}

// CommonStudentService answers which students are registered to all of a set of teachers.
type CommonStudentService struct {
	repo   commonStudentReader
	cache  *CacheService
	logger *zap.Logger
}

// NewCommonStudentService constructs a CommonStudentService.
func NewCommonStudentService(repo commonStudentReader, cache *CacheService, logger *zap.Logger) *CommonStudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommonStudentService{repo: repo, cache: cache, logger: logger}
}

// List returns the intersection of the teachers' rosters ordered by student id.
// No teachers yields an empty list.
func (s *CommonStudentService) List(ctx context.Context, param dto.TeacherParam) (*dto.CommonStudentsResponse, error) {
	teachers := param.Normalize()
	if len(teachers) == 0 {
		return &dto.CommonStudentsResponse{Students: []string{}}, nil
	}

	cacheKey := commonStudentsCacheKey(teachers)
	var cached []string
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit && cached != nil {
		return &dto.CommonStudentsResponse{Students: cached}, nil
	}

	students, err := s.repo.ListCommonStudentEmails(ctx, teachers)
	if err != nil {
		s.logger.Error("list common students failed", zap.Strings("teachers", teachers), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list common students")
	}
	if students == nil {
		students = []string{}
	}

	_ = s.cache.Set(ctx, cacheKey, students, 0)
	return &dto.CommonStudentsResponse{Students: students}, nil
}
