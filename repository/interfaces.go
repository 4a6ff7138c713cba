package repository

import (
	"context"

	"fan-pulse/domain"
	"fan-pulse/models"
)

// TweetRepository handles tweet data persistence.
type TweetRepository interface {
	CreateBatch(ctx context.Context, tweets []*models.Tweet) (int, error)
	FindUnclassified(ctx context.Context, cursor *domain.Cursor, limit int) ([]*models.Tweet, *domain.Cursor, error)
	HasUnclassified(ctx context.Context) (bool, error)
	UpdateSentiment(ctx context.Context, result *models.SentimentResult) error
	List(ctx context.Context, filter models.StatsFilter, sentiment string, limit, offset int) ([]*models.Tweet, error)
	TextCorpus(ctx context.Context, filter models.StatsFilter) ([]string, error)
}

// StatsRepository handles dashboard aggregation queries.
type StatsRepository interface {
	Overview(ctx context.Context, filter models.StatsFilter) (*models.Overview, error)
	Distribution(ctx context.Context, filter models.StatsFilter) ([]models.DistributionSlice, error)
	ClubComparison(ctx context.Context, filter models.StatsFilter) ([]models.ClubSentimentCount, error)
	YearlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.YearlyTrendPoint, error)
	MonthlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.MonthlyTrendPoint, error)
	TopClubs(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubVolume, error)
	ClubBalance(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubBalance, error)
	Clubs(ctx context.Context) ([]string, error)
	Years(ctx context.Context) ([]int, error)
}

// ClassifierRepository handles external classifier API calls.
type ClassifierRepository interface {
	ClassifyText(ctx context.Context, text string) (*models.SentimentResult, error)
	CheckHealth(ctx context.Context) error
}
