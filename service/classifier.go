package service

import (
	"context"
	"log/slog"
	"time"

	"fan-pulse/cache"
	"fan-pulse/domain"
	"fan-pulse/metrics"
	"fan-pulse/models"
	"fan-pulse/repository"
)

// ClassifierService implementation.
type classifierService struct {
	tweetRepo  repository.TweetRepository
	apiRepo    repository.ClassifierRepository
	lexicon    *LexiconClassifier
	statsCache *cache.StatsCache
	collector  *metrics.Collector
	logger     *slog.Logger
	cursor     *domain.Cursor
}

// NewClassifierService creates a new sentiment classifier service.
func NewClassifierService(
	tweetRepo repository.TweetRepository,
	apiRepo repository.ClassifierRepository,
	lexicon *LexiconClassifier,
	statsCache *cache.StatsCache,
	collector *metrics.Collector,
	logger *slog.Logger,
) ClassifierService {
	return &classifierService{
		tweetRepo:  tweetRepo,
		apiRepo:    apiRepo,
		lexicon:    lexicon,
		statsCache: statsCache,
		collector:  collector,
		logger:     logger,
		cursor:     &domain.Cursor{},
	}
}

// ClassifyBatch labels the next batch of unclassified tweets. The hosted
// model is tried first; on permanent failure the lexicon fallback labels the
// tweet so the batch always makes progress.
func (s *classifierService) ClassifyBatch(ctx context.Context, batchSize int) (*ClassificationResult, error) {
	s.logger.InfoContext(ctx, "starting classification batch", "batch_size", batchSize)

	tweets, newCursor, err := s.tweetRepo.FindUnclassified(ctx, s.cursor, batchSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to find unclassified tweets", "error", err)
		return nil, err
	}

	result := &ClassificationResult{
		ProcessedCount: len(tweets),
		Errors:         []error{},
		HasMore:        newCursor != nil,
	}

	for _, tweet := range tweets {
		if ctx.Err() != nil {
			s.logger.WarnContext(ctx, "context canceled, skipping remaining tweets",
				"remaining", len(tweets)-result.SuccessCount-result.ErrorCount,
				"reason", ctx.Err())

			break
		}

		verdict, source := s.classify(ctx, tweet)
		verdict.TweetID = tweet.ID

		if err := s.tweetRepo.UpdateSentiment(ctx, verdict); err != nil {
			s.logger.ErrorContext(ctx, "failed to store sentiment", "error", err, "tweet_id", tweet.ID)
			result.ErrorCount++
			result.Errors = append(result.Errors, err)

			continue
		}

		s.collector.TweetClassified(source, verdict.Label)
		result.SuccessCount++

		if source == "lexicon" {
			result.FallbackCount++
		}
	}

	if newCursor != nil {
		s.cursor = newCursor
	} else {
		s.cursor = &domain.Cursor{}
	}

	if result.SuccessCount > 0 && s.statsCache != nil {
		s.statsCache.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "classification batch completed",
		"processed", result.ProcessedCount,
		"succeeded", result.SuccessCount,
		"fallback", result.FallbackCount,
		"errors", result.ErrorCount,
		"has_more", result.HasMore)

	return result, nil
}

// classify asks the model, falling back to the lexicon when it fails.
func (s *classifierService) classify(ctx context.Context, tweet *models.Tweet) (*models.SentimentResult, string) {
	start := time.Now()

	verdict, err := s.apiRepo.ClassifyText(ctx, tweet.Text)
	if err == nil {
		s.collector.ObserveClassifierLatency(time.Since(start))
		return verdict, "api"
	}

	s.collector.ClassificationFailed()
	s.logger.WarnContext(ctx, "classifier API failed, using lexicon fallback",
		"error", err, "tweet_id", tweet.ID)

	return s.lexicon.Classify(tweet.Text), "lexicon"
}

// HasUnclassifiedTweets reports whether another batch is worth scheduling.
func (s *classifierService) HasUnclassifiedTweets(ctx context.Context) (bool, error) {
	return s.tweetRepo.HasUnclassified(ctx)
}

// ResetPagination rewinds the batch cursor to the beginning.
func (s *classifierService) ResetPagination() {
	s.cursor = &domain.Cursor{}
}
