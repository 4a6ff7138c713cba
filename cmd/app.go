package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"fan-pulse/cache"
	"fan-pulse/driver"
	"fan-pulse/metrics"
	"fan-pulse/repository"
	"fan-pulse/service"
	"fan-pulse/utils"
)

// application wires the process's components together.
type application struct {
	pool       *pgxpool.Pool
	redis      *redis.Client
	collector  *metrics.Collector
	statsCache *cache.StatsCache

	tweetRepo repository.TweetRepository

	ingest     service.IngestService
	classifier service.ClassifierService
	stats      service.StatsService
	wordCloud  service.WordCloudService
	health     service.HealthCheckerService
}

// newApplication connects to the backing stores and builds the service graph.
func newApplication(ctx context.Context) (*application, error) {
	pool, err := driver.Init(ctx, &cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := driver.EnsureSchema(ctx, pool, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	app := &application{
		pool:      pool,
		collector: metrics.NewCollector(),
	}

	if cfg.Redis.Enabled {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			// The cache is an optimization; run without it
			log.Warn("redis unavailable, stats cache disabled", "error", err)
		} else {
			app.redis = client
			app.statsCache = cache.NewStatsCache(client, cfg.Cache.TTL, log)
		}
	}

	app.tweetRepo = repository.NewTweetRepository(pool, log)
	statsRepo := repository.NewStatsRepository(pool, log)
	classifierAPI := driver.NewClassifierAPIClient(cfg.Classifier, cfg.Retry, log)

	app.ingest = service.NewIngestService(app.tweetRepo, utils.NewSanitizer(), app.collector, cfg.Ingest, log)
	app.classifier = service.NewClassifierService(app.tweetRepo, classifierAPI, service.NewLexiconClassifier(), app.statsCache, app.collector, log)
	app.stats = service.NewStatsService(statsRepo, app.statsCache, app.collector, log)
	app.wordCloud = service.NewWordCloudService(app.tweetRepo, log)
	app.health = service.NewHealthCheckerService(classifierAPI, log)

	return app, nil
}

// Close releases the application's connections.
func (a *application) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}

	a.pool.Close()
}
