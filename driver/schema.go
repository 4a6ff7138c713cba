package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL bootstraps the tweet store. content_hash deduplicates re-imports
// of the same dataset row; sentiment stays '' until the classifier runs.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS tweets (
	id UUID PRIMARY KEY,
	club_name TEXT NOT NULL,
	text TEXT NOT NULL,
	posted_at TIMESTAMPTZ NOT NULL,
	sentiment TEXT NOT NULL DEFAULT '',
	score DOUBLE PRECISION NOT NULL DEFAULT 0,
	content_hash TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tweets_club_name ON tweets (club_name);
CREATE INDEX IF NOT EXISTS idx_tweets_posted_at ON tweets (posted_at);
CREATE INDEX IF NOT EXISTS idx_tweets_unclassified ON tweets (created_at, id) WHERE sentiment = '';
`

// EnsureSchema applies the schema DDL. Safe to run on every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		logger.Error("failed to apply schema", "error", err)
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("schema ensured")

	return nil
}
