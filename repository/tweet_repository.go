package repository

import (
	"context"
	"fmt"
	"log/slog"

	"fan-pulse/domain"
	"fan-pulse/models"
)

// TweetRepository implementation.
type tweetRepository struct {
	db     DBPool
	logger *slog.Logger
}

// NewTweetRepository creates a new tweet repository.
func NewTweetRepository(db DBPool, logger *slog.Logger) TweetRepository {
	return &tweetRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts tweets, skipping rows already present (same content hash).
// Returns the number of rows actually inserted.
func (r *tweetRepository) CreateBatch(ctx context.Context, tweets []*models.Tweet) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("failed to create tweets: database connection is nil")
	}

	query := `
		INSERT INTO tweets (id, club_name, text, posted_at, content_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (content_hash) DO NOTHING
	`

	inserted := 0

	for _, tweet := range tweets {
		tag, err := r.db.Exec(ctx, query, tweet.ID, tweet.ClubName, tweet.Text, tweet.PostedAt, tweet.ContentHash)
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to insert tweet", "error", err, "club", tweet.ClubName)
			return inserted, fmt.Errorf("failed to insert tweet: %w", err)
		}

		inserted += int(tag.RowsAffected())
	}

	r.logger.InfoContext(ctx, "tweet batch stored", "received", len(tweets), "inserted", inserted)

	return inserted, nil
}

// FindUnclassified returns the next batch of tweets without a sentiment label,
// paged by (created_at, id) cursor.
func (r *tweetRepository) FindUnclassified(ctx context.Context, cursor *domain.Cursor, limit int) ([]*models.Tweet, *domain.Cursor, error) {
	if r.db == nil {
		return nil, nil, fmt.Errorf("failed to find unclassified tweets: database connection is nil")
	}

	var query string

	var args []interface{}

	if cursor == nil || cursor.LastCreatedAt == nil || cursor.LastCreatedAt.IsZero() {
		// First page - no cursor constraint. The cursor id binds against the
		// uuid column, so an empty-string placeholder would not parse.
		query = `
			SELECT id, club_name, text, posted_at, created_at
			FROM tweets
			WHERE sentiment = ''
			ORDER BY created_at, id
			LIMIT $1
		`
		args = []interface{}{limit}
	} else {
		query = `
			SELECT id, club_name, text, posted_at, created_at
			FROM tweets
			WHERE sentiment = ''
			  AND (created_at, id) > ($1, $2)
			ORDER BY created_at, id
			LIMIT $3
		`
		args = []interface{}{*cursor.LastCreatedAt, cursor.LastID, limit}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to query unclassified tweets", "error", err)
		return nil, nil, fmt.Errorf("failed to query unclassified tweets: %w", err)
	}
	defer rows.Close()

	tweets := []*models.Tweet{}

	for rows.Next() {
		tweet := &models.Tweet{}

		if err := rows.Scan(&tweet.ID, &tweet.ClubName, &tweet.Text, &tweet.PostedAt, &tweet.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "failed to scan tweet row", "error", err)
			return nil, nil, fmt.Errorf("failed to scan tweet row: %w", err)
		}

		tweets = append(tweets, tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate tweet rows: %w", err)
	}

	var newCursor *domain.Cursor

	if len(tweets) == limit {
		last := tweets[len(tweets)-1]
		createdAt := last.CreatedAt
		newCursor = &domain.Cursor{LastCreatedAt: &createdAt, LastID: last.ID}
	}

	return tweets, newCursor, nil
}

// HasUnclassified reports whether any tweet still lacks a sentiment label.
func (r *tweetRepository) HasUnclassified(ctx context.Context) (bool, error) {
	if r.db == nil {
		return false, fmt.Errorf("failed to check unclassified tweets: database connection is nil")
	}

	query := `SELECT EXISTS (SELECT 1 FROM tweets WHERE sentiment = '')`

	var exists bool
	if err := r.db.QueryRow(ctx, query).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "failed to check unclassified tweets", "error", err)
		return false, fmt.Errorf("failed to check unclassified tweets: %w", err)
	}

	return exists, nil
}

// UpdateSentiment stores the classifier verdict for a tweet.
func (r *tweetRepository) UpdateSentiment(ctx context.Context, result *models.SentimentResult) error {
	if r.db == nil {
		return fmt.Errorf("failed to update sentiment: database connection is nil")
	}

	query := `UPDATE tweets SET sentiment = $1, score = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, result.Label, result.Score, result.TweetID)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update sentiment", "error", err, "tweet_id", result.TweetID)
		return fmt.Errorf("failed to update sentiment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTweetNotFound
	}

	return nil
}

// List returns tweets matching the filters, newest first.
func (r *tweetRepository) List(ctx context.Context, filter models.StatsFilter, sentiment string, limit, offset int) ([]*models.Tweet, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to list tweets: database connection is nil")
	}

	query := `
		SELECT id, club_name, text, posted_at, sentiment, score
		FROM tweets
		WHERE ($1 = 0 OR EXTRACT(YEAR FROM posted_at) = $1)
		  AND ($2 = '' OR club_name = $2)
		  AND ($3 = '' OR sentiment = $3)
		ORDER BY posted_at DESC, id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club, sentiment, limit, offset)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list tweets", "error", err)
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	tweets := []*models.Tweet{}

	for rows.Next() {
		tweet := &models.Tweet{}

		if err := rows.Scan(&tweet.ID, &tweet.ClubName, &tweet.Text, &tweet.PostedAt, &tweet.Sentiment, &tweet.Score); err != nil {
			return nil, fmt.Errorf("failed to scan tweet row: %w", err)
		}

		tweets = append(tweets, tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tweet rows: %w", err)
	}

	return tweets, nil
}

// TextCorpus returns the raw text of all tweets matching the filters, for
// word-cloud building.
func (r *tweetRepository) TextCorpus(ctx context.Context, filter models.StatsFilter) ([]string, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to load corpus: database connection is nil")
	}

	query := `
		SELECT text
		FROM tweets
		WHERE ($1 = 0 OR EXTRACT(YEAR FROM posted_at) = $1)
		  AND ($2 = '' OR club_name = $2)
	`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to load corpus", "error", err)
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	defer rows.Close()

	texts := []string{}

	for rows.Next() {
		var text string

		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}

		texts = append(texts, text)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corpus rows: %w", err)
	}

	return texts, nil
}
