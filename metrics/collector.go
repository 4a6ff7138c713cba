// ABOUTME: This file implements Prometheus metrics for the ingest and classify pipelines
// ABOUTME: Exposes counters and latency histograms consumed by the /metrics endpoint
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry and instruments.
type Collector struct {
	registry *prometheus.Registry

	tweetsIngested     prometheus.Counter
	tweetsClassified   *prometheus.CounterVec
	classifyFailures   prometheus.Counter
	classifierLatency  prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	ingestRowsRejected prometheus.Counter
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		tweetsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "fanpulse_tweets_ingested_total",
			Help: "Number of tweets stored by the ingest pipeline.",
		}),
		tweetsClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fanpulse_tweets_classified_total",
			Help: "Number of tweets classified, by source and label.",
		}, []string{"source", "label"}),
		classifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "fanpulse_classification_failures_total",
			Help: "Number of tweets whose classification failed permanently.",
		}),
		classifierLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fanpulse_classifier_latency_seconds",
			Help:    "Latency of classifier API calls.",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fanpulse_stats_cache_lookups_total",
			Help: "Stats cache lookups, by outcome.",
		}, []string{"outcome"}),
		ingestRowsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "fanpulse_ingest_rows_rejected_total",
			Help: "Dataset rows dropped during cleaning.",
		}),
	}
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// TweetsIngested records n stored tweets.
func (c *Collector) TweetsIngested(n int) {
	c.tweetsIngested.Add(float64(n))
}

// TweetClassified records one classified tweet. source is "api" or "lexicon".
func (c *Collector) TweetClassified(source, label string) {
	c.tweetsClassified.WithLabelValues(source, label).Inc()
}

// ClassificationFailed records a tweet that could not be classified at all.
func (c *Collector) ClassificationFailed() {
	c.classifyFailures.Inc()
}

// ObserveClassifierLatency records one classifier API round trip.
func (c *Collector) ObserveClassifierLatency(d time.Duration) {
	c.classifierLatency.Observe(d.Seconds())
}

// CacheLookup records a stats cache lookup outcome ("hit" or "miss").
func (c *Collector) CacheLookup(outcome string) {
	c.cacheLookups.WithLabelValues(outcome).Inc()
}

// IngestRowsRejected records n rows dropped during dataset cleaning.
func (c *Collector) IngestRowsRejected(n int) {
	c.ingestRowsRejected.Add(float64(n))
}
