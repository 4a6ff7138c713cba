package service

import (
	"context"
	"io"

	"fan-pulse/models"
)

// IngestService handles dataset import business logic.
type IngestService interface {
	IngestCSV(ctx context.Context, r io.Reader) (*IngestResult, error)
}

// ClassifierService handles sentiment classification business logic.
type ClassifierService interface {
	ClassifyBatch(ctx context.Context, batchSize int) (*ClassificationResult, error)
	HasUnclassifiedTweets(ctx context.Context) (bool, error)
	ResetPagination()
}

// StatsService serves the dashboard aggregations, cached where possible.
type StatsService interface {
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

// WordCloudService builds keyword frequencies over the tweet corpus.
type WordCloudService interface {
	TopWords(ctx context.Context, filter models.StatsFilter, limit int) ([]models.WordCount, error)
}

// HealthCheckerService handles health checking for the classifier model.
type HealthCheckerService interface {
	CheckClassifierHealth(ctx context.Context) error
	WaitForHealthy(ctx context.Context) error
}

// IngestResult represents the outcome of a dataset import.
type IngestResult struct {
	RowsRead     int
	RowsRejected int
	RowsSampled  int
	Inserted     int
	Duplicates   int
}

// ClassificationResult represents the outcome of one classification batch.
type ClassificationResult struct {
	Errors         []error
	ProcessedCount int
	SuccessCount   int
	FallbackCount  int
	ErrorCount     int
	HasMore        bool
}
