package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

const (
	rosterCachePrefix       = "roster"
	commonStudentsCacheKind = "common"
	activeStudentsCacheKind = "active"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService orchestrates cache operations and related metrics. A nil or
// disabled CacheService behaves as a permanent miss.
//
// When an invalidation fails the pattern is remembered and keys matching it
// are neither read nor written until a later invalidation covering it
// succeeds, so a failed delete never leaves stale entries in use.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool

	mu    sync.Mutex
	stale map[string]struct{}
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		repo:       repo,
		metrics:    metrics,
		defaultTTL: defaultTTL,
		logger:     logger,
		enabled:    enabled,
		stale:      make(map[string]struct{}),
	}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() || s.isStale(key) {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return true, nil
}

// Set stores the value in cache; ttl <= 0 selects the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() || s.isStale(key) {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values matching each pattern. A failed pattern
// is bypassed until it is invalidated successfully. Failures are logged and
// the first one is returned after every pattern was attempted.
func (s *CacheService) Invalidate(ctx context.Context, patterns ...string) error {
	if !s.Enabled() {
		return nil
	}
	var firstErr error
	for _, pattern := range patterns {
		if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidate failed, bypassing pattern", zap.String("pattern", pattern), zap.Error(err))
			s.markStale(pattern)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.clearStale(pattern)
	}
	return firstErr
}

func (s *CacheService) isStale(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pattern := range s.stale {
		if ok, _ := path.Match(pattern, key); ok {
			return true
		}
	}
	return false
}

func (s *CacheService) markStale(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale[pattern] = struct{}{}
}

// clearStale forgets every remembered pattern that pattern covers.
func (s *CacheService) clearStale(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for stale := range s.stale {
		if ok, _ := path.Match(pattern, stale); ok || stale == pattern {
			delete(s.stale, stale)
		}
	}
}

// commonStudentsCacheKey is independent of teacher order and duplicates.
func commonStudentsCacheKey(teachers []string) string {
	sorted := append([]string(nil), teachers...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return makeRosterCacheKey(commonStudentsCacheKind, hex.EncodeToString(sum[:]))
}

// activeStudentsCacheKey hashes the teacher email so glob characters in it
// never leak into invalidation patterns.
func activeStudentsCacheKey(teacher string) string {
	sum := sha256.Sum256([]byte(teacher))
	return makeRosterCacheKey(activeStudentsCacheKind, hex.EncodeToString(sum[:]))
}

func rosterCachePattern(kind string) string {
	return makeRosterCacheKey(kind, "*")
}

func makeRosterCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString(rosterCachePrefix)
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}
