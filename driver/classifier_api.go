package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"fan-pulse/config"
	"fan-pulse/domain"
	"fan-pulse/models"
	"fan-pulse/repository"
	"fan-pulse/retry"
	"fan-pulse/utils"
)

type classifyRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifierAPIClient calls the hosted sentiment model over HTTP with rate
// limiting, retries, and a circuit breaker.
type ClassifierAPIClient struct {
	cfg        config.ClassifierConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *utils.CircuitBreaker
	retrier    *retry.Retrier
	logger     *slog.Logger
}

// NewClassifierAPIClient creates a classifier API client.
func NewClassifierAPIClient(cfg config.ClassifierConfig, retryCfg config.RetryConfig, logger *slog.Logger) repository.ClassifierRepository {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
		},
	}

	retrier := retry.NewRetrier(retry.Config{
		MaxAttempts:   retryCfg.MaxAttempts,
		BaseDelay:     retryCfg.BaseDelay,
		MaxDelay:      retryCfg.MaxDelay,
		BackoffFactor: retryCfg.BackoffFactor,
		JitterFactor:  retryCfg.JitterFactor,
	}, isRetryableClassifierError, logger)

	return &ClassifierAPIClient{
		cfg:        cfg,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		breaker:    utils.NewCircuitBreaker(cfg.BreakerLimit, cfg.BreakerReset),
		retrier:    retrier,
		logger:     logger,
	}
}

// ClassifyText sends the tweet text to the model and maps its verdict to the
// stored label set. Text beyond the configured limit is truncated, matching
// the model's input window.
func (c *ClassifierAPIClient) ClassifyText(ctx context.Context, text string) (*models.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTweetTextEmpty
	}

	if runes := []rune(text); len(runes) > c.cfg.MaxTextLength {
		text = string(runes[:c.cfg.MaxTextLength])
	}

	var result *models.SentimentResult

	err := c.retrier.Do(ctx, func() error {
		return c.breaker.Call(func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter wait: %w", err)
			}

			verdict, err := c.classifyOnce(ctx, text)
			if err != nil {
				return err
			}

			result = verdict

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *ClassifierAPIClient) classifyOnce(ctx context.Context, text string) (*models.SentimentResult, error) {
	payload, err := json.Marshal(classifyRequest{Model: c.cfg.Model, Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	apiURL := c.cfg.Host + c.cfg.APIPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build classify request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "classifier request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read classify response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.ErrorContext(ctx, "classifier returned server error", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrClassifierUnavailable, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrClassifierBadResponse, resp.StatusCode)
	}

	var parsed classifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassifierBadResponse, err)
	}

	label, err := normalizeLabel(parsed.Label)
	if err != nil {
		return nil, err
	}

	return &models.SentimentResult{Label: label, Score: parsed.Score}, nil
}

// CheckHealth probes the model's health endpoint.
func (c *ClassifierAPIClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Host+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrClassifierUnavailable, resp.StatusCode)
	}

	return nil
}

// normalizeLabel maps model output (upper-case SST-2 labels) to the stored set.
func normalizeLabel(label string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE":
		return models.SentimentPositive, nil
	case "NEGATIVE":
		return models.SentimentNegative, nil
	case "NEUTRAL":
		return models.SentimentNeutral, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLabel, label)
	}
}

// isRetryableClassifierError retries transport failures and 5xx; malformed
// responses and unknown labels fail fast.
func isRetryableClassifierError(err error) bool {
	if errors.Is(err, domain.ErrClassifierBadResponse) || errors.Is(err, domain.ErrUnknownLabel) {
		return false
	}

	if errors.Is(err, utils.ErrCircuitOpen) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return true
}
