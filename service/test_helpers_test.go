package service

import (
	"context"
	"log/slog"
	"os"

	"fan-pulse/domain"
	"fan-pulse/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Only errors in tests
	}))
}

// stubTweetRepo is an in-memory TweetRepository for service tests.
type stubTweetRepo struct {
	tweets []*models.Tweet

	createBatchErr error
	findErr        error
	updateErr      error
	corpusErr      error

	updated     []*models.SentimentResult
	lastCursor  *domain.Cursor
	returnMore  bool
	createCalls int
}

func (r *stubTweetRepo) CreateBatch(_ context.Context, tweets []*models.Tweet) (int, error) {
	if r.createBatchErr != nil {
		return 0, r.createBatchErr
	}

	r.createCalls++
	r.tweets = append(r.tweets, tweets...)

	return len(tweets), nil
}

func (r *stubTweetRepo) FindUnclassified(_ context.Context, cursor *domain.Cursor, limit int) ([]*models.Tweet, *domain.Cursor, error) {
	if r.findErr != nil {
		return nil, nil, r.findErr
	}

	r.lastCursor = cursor

	tweets := r.tweets
	if len(tweets) > limit {
		tweets = tweets[:limit]
	}

	if r.returnMore {
		return tweets, &domain.Cursor{LastID: tweets[len(tweets)-1].ID}, nil
	}

	return tweets, nil, nil
}

func (r *stubTweetRepo) HasUnclassified(_ context.Context) (bool, error) {
	return len(r.tweets) > 0, nil
}

func (r *stubTweetRepo) UpdateSentiment(_ context.Context, result *models.SentimentResult) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	r.updated = append(r.updated, result)

	return nil
}

func (r *stubTweetRepo) List(_ context.Context, _ models.StatsFilter, _ string, _, _ int) ([]*models.Tweet, error) {
	return r.tweets, nil
}

func (r *stubTweetRepo) TextCorpus(_ context.Context, _ models.StatsFilter) ([]string, error) {
	if r.corpusErr != nil {
		return nil, r.corpusErr
	}

	texts := make([]string, 0, len(r.tweets))
	for _, tweet := range r.tweets {
		texts = append(texts, tweet.Text)
	}

	return texts, nil
}

// stubClassifierRepo fakes the hosted classifier API.
type stubClassifierRepo struct {
	result    *models.SentimentResult
	err       error
	healthErr error
	calls     int
}

func (r *stubClassifierRepo) ClassifyText(_ context.Context, _ string) (*models.SentimentResult, error) {
	r.calls++

	if r.err != nil {
		return nil, r.err
	}

	return r.result, nil
}

func (r *stubClassifierRepo) CheckHealth(_ context.Context) error {
	return r.healthErr
}

// stubStatsRepo counts calls so cache hit behavior is observable.
type stubStatsRepo struct {
	overview *models.Overview
	clubs    []string
	calls    int
	err      error
}

func (r *stubStatsRepo) Overview(_ context.Context, _ models.StatsFilter) (*models.Overview, error) {
	r.calls++
	return r.overview, r.err
}

func (r *stubStatsRepo) Distribution(_ context.Context, _ models.StatsFilter) ([]models.DistributionSlice, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) ClubComparison(_ context.Context, _ models.StatsFilter) ([]models.ClubSentimentCount, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) YearlyTrends(_ context.Context, _ models.StatsFilter) ([]models.YearlyTrendPoint, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) MonthlyTrends(_ context.Context, _ models.StatsFilter) ([]models.MonthlyTrendPoint, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) TopClubs(_ context.Context, _ models.StatsFilter, _ int) ([]models.ClubVolume, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) ClubBalance(_ context.Context, _ models.StatsFilter, _ int) ([]models.ClubBalance, error) {
	r.calls++
	return nil, r.err
}

func (r *stubStatsRepo) Clubs(_ context.Context) ([]string, error) {
	r.calls++
	return r.clubs, r.err
}

func (r *stubStatsRepo) Years(_ context.Context) ([]int, error) {
	r.calls++
	return nil, r.err
}
