// ABOUTME: This file implements exponential backoff retry mechanism with jitter
// ABOUTME: Provides resilient error handling for classifier API calls
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

type Config struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// ErrorClassifier reports whether an error is worth retrying.
type ErrorClassifier func(error) bool

type Retrier struct {
	config      Config
	isRetryable ErrorClassifier
	logger      *slog.Logger
}

func NewRetrier(config Config, classifier ErrorClassifier, logger *slog.Logger) *Retrier {
	return &Retrier{
		config:      config,
		isRetryable: classifier,
		logger:      logger,
	}
}

// Do runs operation until it succeeds, exhausts attempts, or hits a
// non-retryable error. The backoff wait is cancellable via ctx.
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	var lastErr error

	var totalWaitTime time.Duration

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retry",
					"attempt", attempt,
					"total_wait_time_ms", totalWaitTime.Milliseconds())
			}

			return nil
		}

		retryable := r.isRetryable != nil && r.isRetryable(lastErr)
		r.logger.Warn("operation attempt failed",
			"attempt", attempt,
			"error", lastErr,
			"retryable", retryable)

		if attempt == r.config.MaxAttempts || !retryable {
			break
		}

		delay := r.calculateDelay(attempt)
		totalWaitTime += delay

		select {
		case <-ctx.Done():
			r.logger.Error("retry cancelled by context",
				"attempt", attempt,
				"context_error", ctx.Err())

			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts (wait: %dms): %w",
		r.config.MaxAttempts, totalWaitTime.Milliseconds(), lastErr)
}

func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	// Jitter spreads concurrent retries apart
	jitter := 1.0 + (rand.Float64()-0.5)*r.config.JitterFactor
	delay *= jitter

	return time.Duration(delay)
}
