package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9300, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "fanpulse", cfg.Database.DBName)
	assert.Equal(t, 512, cfg.Classifier.MaxTextLength)
	assert.Equal(t, 40, cfg.Classifier.BatchSize)
	assert.Equal(t, 1500, cfg.Ingest.MaxSample)
	assert.Equal(t, int64(42), cfg.Ingest.SampleSeed)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("CLASSIFIER_BATCH_SIZE", "10")
	t.Setenv("CLASSIFIER_HOST", "http://localhost:9090")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Classifier.BatchSize)
	assert.Equal(t, "http://localhost:9090", cfg.Classifier.Host)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid port", "SERVER_PORT", "not-a-port"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"invalid duration", "CLASSIFIER_TIMEOUT", "soon"},
		{"invalid batch size", "CLASSIFIER_BATCH_SIZE", "0"},
		{"classifier host without scheme", "CLASSIFIER_HOST", "sentiment-model:8080"},
		{"negative sample", "INGEST_MAX_SAMPLE", "-1"},
		{"jitter above one", "RETRY_JITTER_FACTOR", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
