package service

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"fan-pulse/config"
	"fan-pulse/domain"
	"fan-pulse/metrics"
	"fan-pulse/models"
	"fan-pulse/repository"
	"fan-pulse/utils"
)

// Accepted timestamp layouts, most specific first. The raw export uses the
// Twitter API layout; re-imports of cleaned files use ISO forms.
var timeLayouts = []string{
	"Mon Jan 02 15:04:05 -0700 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IngestService implementation.
type ingestService struct {
	tweetRepo repository.TweetRepository
	sanitizer *utils.Sanitizer
	collector *metrics.Collector
	cfg       config.IngestConfig
	logger    *slog.Logger
}

// NewIngestService creates a new dataset ingest service.
func NewIngestService(
	tweetRepo repository.TweetRepository,
	sanitizer *utils.Sanitizer,
	collector *metrics.Collector,
	cfg config.IngestConfig,
	logger *slog.Logger,
) IngestService {
	return &ingestService{
		tweetRepo: tweetRepo,
		sanitizer: sanitizer,
		collector: collector,
		cfg:       cfg,
		logger:    logger,
	}
}

// IngestCSV reads a tweet dataset export, cleans it, optionally samples it
// down, and stores the result.
func (s *ingestService) IngestCSV(ctx context.Context, r io.Reader) (*IngestResult, error) {
	s.logger.InfoContext(ctx, "starting dataset ingest", "max_sample", s.cfg.MaxSample)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &IngestResult{}
	tweets := []*models.Tweet{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			// Ragged rows in hand-exported CSVs are dropped, not fatal
			s.logger.WarnContext(ctx, "skipping malformed dataset row", "error", err)
			result.RowsRejected++

			continue
		}

		result.RowsRead++

		tweet, ok := s.cleanRow(record, columns)
		if !ok {
			result.RowsRejected++
			continue
		}

		tweets = append(tweets, tweet)
	}

	if len(tweets) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	tweets = s.sample(tweets)
	result.RowsSampled = len(tweets)

	inserted, err := s.tweetRepo.CreateBatch(ctx, tweets)
	if err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	result.Inserted = inserted
	result.Duplicates = len(tweets) - inserted

	s.collector.TweetsIngested(inserted)
	s.collector.IngestRowsRejected(result.RowsRejected)

	s.logger.InfoContext(ctx, "dataset ingest completed",
		"rows_read", result.RowsRead,
		"rows_rejected", result.RowsRejected,
		"rows_sampled", result.RowsSampled,
		"inserted", inserted,
		"duplicates", result.Duplicates)

	return result, nil
}

type columnIndexes struct {
	date int
	text int
	club int
}

// mapColumns accepts both the raw export header and the cleaned one.
func mapColumns(header []string) (columnIndexes, error) {
	columns := columnIndexes{date: -1, text: -1, club: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "tweet_created_at", "date":
			columns.date = i
		case "tweet_full_text", "text":
			columns.text = i
		case "user_screen_name", "club_name":
			columns.club = i
		}
	}

	if columns.date == -1 || columns.text == -1 || columns.club == -1 {
		return columns, domain.ErrMissingColumns
	}

	return columns, nil
}

// cleanRow turns one CSV record into a Tweet, or reports it unusable.
func (s *ingestService) cleanRow(record []string, columns columnIndexes) (*models.Tweet, bool) {
	maxIndex := columns.date
	if columns.text > maxIndex {
		maxIndex = columns.text
	}

	if columns.club > maxIndex {
		maxIndex = columns.club
	}

	if len(record) <= maxIndex {
		return nil, false
	}

	text := s.sanitizer.SanitizeText(record[columns.text])
	if text == "" {
		return nil, false
	}

	clubRaw := strings.TrimSpace(record[columns.club])
	if clubRaw == "" {
		return nil, false
	}

	postedAt := parseTime(record[columns.date])

	return &models.Tweet{
		ID:          uuid.NewString(),
		ClubName:    NormalizeClubName(clubRaw),
		Text:        text,
		PostedAt:    postedAt,
		ContentHash: contentHash(clubRaw, text, postedAt),
	}, true
}

// parseTime tries the known layouts; unparseable dates yield the zero time so
// the tweet still counts toward club and distribution stats.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

func contentHash(club, text string, postedAt time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", club, text, postedAt.Unix()))
	return hex.EncodeToString(sum[:])
}

// sample reduces the cleaned rows to at most MaxSample, deterministically for
// a fixed seed. MaxSample 0 disables sampling.
func (s *ingestService) sample(tweets []*models.Tweet) []*models.Tweet {
	if s.cfg.MaxSample <= 0 || len(tweets) <= s.cfg.MaxSample {
		return tweets
	}

	rng := rand.New(rand.NewSource(s.cfg.SampleSeed))
	sampled := make([]*models.Tweet, 0, s.cfg.MaxSample)

	for _, i := range rng.Perm(len(tweets))[:s.cfg.MaxSample] {
		sampled = append(sampled, tweets[i])
	}

	return sampled
}
