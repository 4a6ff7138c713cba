package service

import (
	"context"
	"fmt"
	"log/slog"

	"fan-pulse/cache"
	"fan-pulse/metrics"
	"fan-pulse/models"
	"fan-pulse/repository"
)

// StatsService implementation. Wraps the aggregation queries with the Redis
// cache; a nil cache means every read goes to the database.
type statsService struct {
	statsRepo  repository.StatsRepository
	statsCache *cache.StatsCache
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(
	statsRepo repository.StatsRepository,
	statsCache *cache.StatsCache,
	collector *metrics.Collector,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		statsCache: statsCache,
		collector:  collector,
		logger:     logger,
	}
}

func filterParts(filter models.StatsFilter) []string {
	return []string{fmt.Sprintf("y%d", filter.Year), "c" + filter.Club}
}

// cached runs load through the cache under endpoint+filter keys.
func cached[T any](ctx context.Context, s *statsService, endpoint string, parts []string, load func(context.Context) (T, error)) (T, error) {
	if s.statsCache == nil {
		return load(ctx)
	}

	key := s.statsCache.Key(ctx, endpoint, parts...)

	var hit T
	if s.statsCache.GetJSON(ctx, key, &hit) {
		s.collector.CacheLookup("hit")
		return hit, nil
	}

	s.collector.CacheLookup("miss")

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	s.statsCache.SetJSON(ctx, key, value)

	return value, nil
}

func (s *statsService) Overview(ctx context.Context, filter models.StatsFilter) (*models.Overview, error) {
	return cached(ctx, s, "overview", filterParts(filter), func(ctx context.Context) (*models.Overview, error) {
		return s.statsRepo.Overview(ctx, filter)
	})
}

func (s *statsService) Distribution(ctx context.Context, filter models.StatsFilter) ([]models.DistributionSlice, error) {
	return cached(ctx, s, "distribution", filterParts(filter), func(ctx context.Context) ([]models.DistributionSlice, error) {
		return s.statsRepo.Distribution(ctx, filter)
	})
}

func (s *statsService) ClubComparison(ctx context.Context, filter models.StatsFilter) ([]models.ClubSentimentCount, error) {
	return cached(ctx, s, "clubs-comparison", filterParts(filter), func(ctx context.Context) ([]models.ClubSentimentCount, error) {
		return s.statsRepo.ClubComparison(ctx, filter)
	})
}

func (s *statsService) YearlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.YearlyTrendPoint, error) {
	return cached(ctx, s, "trends-yearly", filterParts(filter), func(ctx context.Context) ([]models.YearlyTrendPoint, error) {
		return s.statsRepo.YearlyTrends(ctx, filter)
	})
}

func (s *statsService) MonthlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.MonthlyTrendPoint, error) {
	return cached(ctx, s, "trends-monthly", filterParts(filter), func(ctx context.Context) ([]models.MonthlyTrendPoint, error) {
		return s.statsRepo.MonthlyTrends(ctx, filter)
	})
}

func (s *statsService) TopClubs(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubVolume, error) {
	parts := append(filterParts(filter), fmt.Sprintf("l%d", limit))

	return cached(ctx, s, "top-clubs", parts, func(ctx context.Context) ([]models.ClubVolume, error) {
		return s.statsRepo.TopClubs(ctx, filter, limit)
	})
}

func (s *statsService) ClubBalance(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubBalance, error) {
	parts := append(filterParts(filter), fmt.Sprintf("l%d", limit))

	return cached(ctx, s, "balance", parts, func(ctx context.Context) ([]models.ClubBalance, error) {
		return s.statsRepo.ClubBalance(ctx, filter, limit)
	})
}

func (s *statsService) Clubs(ctx context.Context) ([]string, error) {
	return cached(ctx, s, "clubs", nil, func(ctx context.Context) ([]string, error) {
		return s.statsRepo.Clubs(ctx)
	})
}

func (s *statsService) Years(ctx context.Context) ([]int, error) {
	return cached(ctx, s, "years", nil, func(ctx context.Context) ([]int, error) {
		return s.statsRepo.Years(ctx)
	})
}
