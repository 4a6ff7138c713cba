package config

import (
	"fmt"
	"strings"
)

func validateConfig(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.MaxConns < 1 {
		return fmt.Errorf("invalid DB_MAX_CONNS: %d", config.Database.MaxConns)
	}

	if config.Database.MinConns < 0 || config.Database.MinConns > config.Database.MaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS: %d (max %d)", config.Database.MinConns, config.Database.MaxConns)
	}

	if !strings.HasPrefix(config.Classifier.Host, "http://") && !strings.HasPrefix(config.Classifier.Host, "https://") {
		return fmt.Errorf("classifier host must be an http(s) URL: %s", config.Classifier.Host)
	}

	if config.Classifier.MaxTextLength < 1 {
		return fmt.Errorf("invalid CLASSIFIER_MAX_TEXT_LENGTH: %d", config.Classifier.MaxTextLength)
	}

	if config.Classifier.BatchSize < 1 {
		return fmt.Errorf("invalid CLASSIFIER_BATCH_SIZE: %d", config.Classifier.BatchSize)
	}

	if config.Classifier.RatePerSecond <= 0 {
		return fmt.Errorf("invalid CLASSIFIER_RATE_PER_SECOND: %f", config.Classifier.RatePerSecond)
	}

	if config.Ingest.MaxSample < 0 {
		return fmt.Errorf("invalid INGEST_MAX_SAMPLE: %d", config.Ingest.MaxSample)
	}

	if config.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS: %d", config.Retry.MaxAttempts)
	}

	if config.Retry.BackoffFactor < 1 {
		return fmt.Errorf("invalid RETRY_BACKOFF_FACTOR: %f", config.Retry.BackoffFactor)
	}

	if config.Retry.JitterFactor < 0 || config.Retry.JitterFactor > 1 {
		return fmt.Errorf("invalid RETRY_JITTER_FACTOR: %f", config.Retry.JitterFactor)
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("invalid CACHE_TTL: %s", config.Cache.TTL)
	}

	return nil
}
