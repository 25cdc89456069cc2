package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/cache"
	"go.uber.org/zap"
)

const (
	resultsCachePrefix = "survey_results_"
	countCachePrefix   = "survey_count_"
	cacheTTL           = time.Minute
)

// CachedResponseService wraps a Responses implementation with a read-through
// cache. Reads serve cached payloads within the TTL; a successful submission
// removes both entries for the survey so the next read recomputes.
//
// The cache is not transactionally tied to the persistence write: between
// commit and invalidation a concurrent reader can still hit pre-submission
// data. The TTL bounds that staleness even if invalidation never runs.
type CachedResponseService struct {
	inner Responses
	cache cache.Cache
	log   *zap.Logger
	ttl   time.Duration
}

func NewCachedResponseService(inner Responses, store cache.Cache, log *zap.Logger) *CachedResponseService {
	return &CachedResponseService{inner: inner, cache: store, log: log, ttl: cacheTTL}
}

func (s *CachedResponseService) Submit(ctx context.Context, req SubmitResponseRequest, ipAddress string) (uuid.UUID, error) {
	id, err := s.inner.Submit(ctx, req, ipAddress)
	if err != nil {
		return uuid.Nil, err
	}

	s.invalidate(ctx, resultsCachePrefix+req.SurveyID.String())
	s.invalidate(ctx, countCachePrefix+req.SurveyID.String())
	return id, nil
}

func (s *CachedResponseService) Results(ctx context.Context, surveyID uuid.UUID) (*SurveyResults, error) {
	key := resultsCachePrefix + surveyID.String()

	if blob, err := s.cache.Get(ctx, key); err == nil {
		var cached SurveyResults
		if err := json.Unmarshal(blob, &cached); err == nil {
			return &cached, nil
		}
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	results, err := s.inner.Results(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if blob, err := json.Marshal(results); err == nil {
		if err := s.cache.Set(ctx, key, blob, s.ttl); err != nil {
			s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return results, nil
}

func (s *CachedResponseService) Count(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	key := countCachePrefix + surveyID.String()

	if blob, err := s.cache.Get(ctx, key); err == nil {
		if count, err := strconv.ParseInt(string(blob), 10, 64); err == nil {
			return count, nil
		}
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	count, err := s.inner.Count(ctx, surveyID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, key, []byte(strconv.FormatInt(count, 10)), s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return count, nil
}

// invalidate removes an entry rather than refreshing it; failures are logged
// and swallowed since the TTL already bounds staleness.
func (s *CachedResponseService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Remove(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
