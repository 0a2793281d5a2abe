package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prepmind/neetprep-backend/internal/model"
	"github.com/prepmind/neetprep-backend/internal/stats"
)

const userStatsCacheTTL = 5 * time.Minute

// ResponseReader is the read side of the response store the stats service
// depends on.
type ResponseReader interface {
	ListByTest(ctx context.Context, testID string, limit int) ([]model.UserResponse, error)
	AggregateByUser(ctx context.Context, userID string) (total, mistakes int, err error)
}

// StatsService turns persisted response records into summaries. User-level
// aggregates are cached in Redis and invalidated whenever an answer lands.
type StatsService struct {
	responses ResponseReader
	rdb       *redis.Client
	fetchCap  int
	log       zerolog.Logger
}

// NewStatsService creates a new StatsService. rdb may be nil, in which case
// caching is skipped.
func NewStatsService(responses ResponseReader, rdb *redis.Client, fetchCap int, log zerolog.Logger) *StatsService {
	return &StatsService{
		responses: responses,
		rdb:       rdb,
		fetchCap:  fetchCap,
		log:       log.With().Str("component", "stats_service").Logger(),
	}
}

// ComputeTestResults fetches a test's records and aggregates them.
// A fetch failure or an empty record set is a provider error: a finished
// test must have at least one persisted answer, and a zeroed summary must
// never stand in for a failure.
func (s *StatsService) ComputeTestResults(ctx context.Context, testID string) (*model.TestResults, error) {
	records, err := s.responses.ListByTest(ctx, testID, s.fetchCap)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch responses: %v", ErrProvider, err)
	}

	results, err := stats.Summarize(records)
	if errors.Is(err, stats.ErrNoRecords) {
		return nil, fmt.Errorf("%w: no responses found for test %s", ErrProvider, testID)
	}
	if err != nil {
		return nil, err
	}

	if unknown := stats.UnknownSubjectCount(records); unknown > 0 {
		s.log.Warn().
			Str("test_id", testID).
			Int("unknown_subject_records", unknown).
			Msg("Records excluded from subject breakdown")
	}
	return results, nil
}

// GetUserStats returns the user's all-time totals, served from cache when
// fresh. Cache failures degrade to a direct query, never to an error.
func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	key := userStatsCacheKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var us model.UserStats
			if json.Unmarshal([]byte(cached), &us) == nil {
				return &us, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Stats cache read failed")
		}
	}

	total, mistakes, err := s.responses.AggregateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate responses: %v", ErrProvider, err)
	}

	us := &model.UserStats{
		TotalQuestions: total,
		Mistakes:       mistakes,
	}
	if total > 0 {
		us.Accuracy = math.Round(float64(total-mistakes)/float64(total)*1000) / 10
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(us); err == nil {
			if err := s.rdb.Set(ctx, key, payload, userStatsCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Stats cache write failed")
			}
		}
	}
	return us, nil
}

// InvalidateUserStats drops the cached aggregate after a new answer.
func (s *StatsService) InvalidateUserStats(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, userStatsCacheKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Stats cache invalidation failed")
	}
}

func userStatsCacheKey(userID string) string {
	return "stats:user:" + userID
}
