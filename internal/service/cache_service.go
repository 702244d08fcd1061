package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

const eventKeyPrefix = "events:"

// Event read keys. Every key shares eventKeyPrefix so one pattern purge
// drops them all after a write.
func eventIDKey(id string) string { return eventKeyPrefix + "id:" + id }
func eventYearKey(year int) string { return fmt.Sprintf("%syear:%d", eventKeyPrefix, year) }
func currentEventKey(year int) string { return fmt.Sprintf("%scurrent:%d", eventKeyPrefix, year) }

// CacheRepository is the key/value store behind CacheService.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService is a best-effort cache-aside layer for public event reads.
// Store errors are logged and counted, never returned, so a broken cache
// degrades to a permanent miss. A nil service is disabled.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a cache service; ttl defaults to five minutes.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled reports whether reads and writes reach the store.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Fetch decodes key into dest and reports a hit.
func (s *CacheService) Fetch(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("event cache read failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Store writes value under key with the configured TTL.
func (s *CacheService) Store(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("event cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// PurgeEvents drops every cached event read.
func (s *CacheService) PurgeEvents(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	s.metrics.RecordCacheInvalidation()
	if err := s.repo.DeleteByPattern(ctx, eventKeyPrefix+"*"); err != nil {
		s.logger.Warn("event cache purge failed", zap.Error(err))
	}
}
