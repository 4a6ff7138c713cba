package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fan-pulse/config"
	"fan-pulse/domain"
)

func testLoggerDriver() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Only errors in tests
	}))
}

func testClassifierConfig(host string) config.ClassifierConfig {
	return config.ClassifierConfig{
		Host:          host,
		APIPath:       "/v1/classify",
		Model:         "distilbert-sst2",
		Timeout:       5 * time.Second,
		MaxTextLength: 512,
		RatePerSecond: 1000,
		BreakerLimit:  10,
		BreakerReset:  time.Second,
	}
}

func testRetryConfig() config.RetryConfig {
	return config.RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
		JitterFactor:  0,
	}
}

func TestClassifierAPIClient_ClassifyText(t *testing.T) {
	var gotBody classifyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/classify", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label":"POSITIVE","score":0.984}`))
	}))
	defer server.Close()

	client := NewClassifierAPIClient(testClassifierConfig(server.URL), testRetryConfig(), testLoggerDriver())

	result, err := client.ClassifyText(context.Background(), "what a comeback")
	require.NoError(t, err)
	assert.Equal(t, "Positive", result.Label)
	assert.InDelta(t, 0.984, result.Score, 1e-9)
	assert.Equal(t, "what a comeback", gotBody.Text)
	assert.Equal(t, "distilbert-sst2", gotBody.Model)
}

func TestClassifierAPIClient_TruncatesLongText(t *testing.T) {
	var gotText string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotText = req.Text

		_, _ = w.Write([]byte(`{"label":"NEGATIVE","score":0.7}`))
	}))
	defer server.Close()

	cfg := testClassifierConfig(server.URL)
	cfg.MaxTextLength = 10

	client := NewClassifierAPIClient(cfg, testRetryConfig(), testLoggerDriver())

	long := "0123456789overflow"
	result, err := client.ClassifyText(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, "Negative", result.Label)
	assert.Equal(t, "0123456789", gotText)
}

func TestClassifierAPIClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = w.Write([]byte(`{"label":"POSITIVE","score":0.6}`))
	}))
	defer server.Close()

	client := NewClassifierAPIClient(testClassifierConfig(server.URL), testRetryConfig(), testLoggerDriver())

	result, err := client.ClassifyText(context.Background(), "retry me")
	require.NoError(t, err)
	assert.Equal(t, "Positive", result.Label)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClassifierAPIClient_BadResponseFailsFast(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClassifierAPIClient(testClassifierConfig(server.URL), testRetryConfig(), testLoggerDriver())

	_, err := client.ClassifyText(context.Background(), "broken model")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClassifierBadResponse)
	assert.Equal(t, int32(1), calls.Load(), "malformed responses must not be retried")
}

func TestClassifierAPIClient_UnknownLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"label":"CONFUSED","score":0.5}`))
	}))
	defer server.Close()

	client := NewClassifierAPIClient(testClassifierConfig(server.URL), testRetryConfig(), testLoggerDriver())

	_, err := client.ClassifyText(context.Background(), "strange verdict")
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)
}

func TestClassifierAPIClient_EmptyText(t *testing.T) {
	client := NewClassifierAPIClient(testClassifierConfig("http://unused"), testRetryConfig(), testLoggerDriver())

	_, err := client.ClassifyText(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrTweetTextEmpty)
}

func TestClassifierAPIClient_CheckHealth(t *testing.T) {
	healthy := true

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)

		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := NewClassifierAPIClient(testClassifierConfig(server.URL), testRetryConfig(), testLoggerDriver())

	require.NoError(t, client.CheckHealth(context.Background()))

	healthy = false
	assert.ErrorIs(t, client.CheckHealth(context.Background()), domain.ErrClassifierUnavailable)
}
