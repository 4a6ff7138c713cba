package repository

import (
	"context"
	"fmt"
	"log/slog"

	"fan-pulse/models"
)

// StatsRepository implementation.
type statsRepository struct {
	db     DBPool
	logger *slog.Logger
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db DBPool, logger *slog.Logger) StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// filterClause is shared by every aggregation: $1 is the year (0 = all),
// $2 is the club ('' = all).
const filterClause = `
		WHERE ($1 = 0 OR EXTRACT(YEAR FROM posted_at) = $1)
		  AND ($2 = '' OR club_name = $2)`

// Overview returns the headline counts for the dashboard metric row.
func (r *statsRepository) Overview(ctx context.Context, filter models.StatsFilter) (*models.Overview, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch overview: database connection is nil")
	}

	query := `
		SELECT COUNT(*), COUNT(DISTINCT club_name)
		FROM tweets` + filterClause

	overview := &models.Overview{BySentiment: map[string]int{}}

	if err := r.db.QueryRow(ctx, query, filter.Year, filter.Club).Scan(&overview.TotalTweets, &overview.ClubCount); err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch overview counts", "error", err)
		return nil, fmt.Errorf("failed to fetch overview counts: %w", err)
	}

	slices, err := r.Distribution(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, slice := range slices {
		overview.BySentiment[slice.Sentiment] = slice.Count
	}

	return overview, nil
}

// Distribution returns per-label counts and shares for the composition pie.
func (r *statsRepository) Distribution(ctx context.Context, filter models.StatsFilter) ([]models.DistributionSlice, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch distribution: database connection is nil")
	}

	query := `
		SELECT sentiment, COUNT(*)
		FROM tweets` + filterClause + `
		  AND sentiment <> ''
		GROUP BY sentiment
		ORDER BY COUNT(*) DESC`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch distribution", "error", err)
		return nil, fmt.Errorf("failed to fetch distribution: %w", err)
	}
	defer rows.Close()

	slices := []models.DistributionSlice{}
	total := 0

	for rows.Next() {
		var slice models.DistributionSlice

		if err := rows.Scan(&slice.Sentiment, &slice.Count); err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}

		total += slice.Count
		slices = append(slices, slice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate distribution rows: %w", err)
	}

	for i := range slices {
		if total > 0 {
			slices[i].Share = float64(slices[i].Count) / float64(total)
		}
	}

	return slices, nil
}

// ClubComparison returns per-club per-label counts for the grouped bar chart.
func (r *statsRepository) ClubComparison(ctx context.Context, filter models.StatsFilter) ([]models.ClubSentimentCount, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch club comparison: database connection is nil")
	}

	query := `
		SELECT club_name, sentiment, COUNT(*)
		FROM tweets` + filterClause + `
		  AND sentiment <> ''
		GROUP BY club_name, sentiment
		ORDER BY club_name, sentiment`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch club comparison", "error", err)
		return nil, fmt.Errorf("failed to fetch club comparison: %w", err)
	}
	defer rows.Close()

	counts := []models.ClubSentimentCount{}

	for rows.Next() {
		var count models.ClubSentimentCount

		if err := rows.Scan(&count.ClubName, &count.Sentiment, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan club comparison row: %w", err)
		}

		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate club comparison rows: %w", err)
	}

	return counts, nil
}

// YearlyTrends returns per-year per-label counts for the trend line.
func (r *statsRepository) YearlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.YearlyTrendPoint, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch yearly trends: database connection is nil")
	}

	query := `
		SELECT EXTRACT(YEAR FROM posted_at)::int AS year, sentiment, COUNT(*)
		FROM tweets` + filterClause + `
		  AND sentiment <> ''
		  AND posted_at > to_timestamp(0)
		GROUP BY year, sentiment
		ORDER BY year, sentiment`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch yearly trends", "error", err)
		return nil, fmt.Errorf("failed to fetch yearly trends: %w", err)
	}
	defer rows.Close()

	points := []models.YearlyTrendPoint{}

	for rows.Next() {
		var point models.YearlyTrendPoint

		if err := rows.Scan(&point.Year, &point.Sentiment, &point.Count); err != nil {
			return nil, fmt.Errorf("failed to scan yearly trend row: %w", err)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate yearly trend rows: %w", err)
	}

	return points, nil
}

// MonthlyTrends returns month-bucketed per-label counts for the activity line.
func (r *statsRepository) MonthlyTrends(ctx context.Context, filter models.StatsFilter) ([]models.MonthlyTrendPoint, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch monthly trends: database connection is nil")
	}

	query := `
		SELECT to_char(date_trunc('month', posted_at), 'YYYY-MM') AS month, sentiment, COUNT(*)
		FROM tweets` + filterClause + `
		  AND sentiment <> ''
		  AND posted_at > to_timestamp(0)
		GROUP BY month, sentiment
		ORDER BY month, sentiment`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch monthly trends", "error", err)
		return nil, fmt.Errorf("failed to fetch monthly trends: %w", err)
	}
	defer rows.Close()

	points := []models.MonthlyTrendPoint{}

	for rows.Next() {
		var point models.MonthlyTrendPoint

		if err := rows.Scan(&point.Month, &point.Sentiment, &point.Count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly trend row: %w", err)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly trend rows: %w", err)
	}

	return points, nil
}

// TopClubs returns the most active clubs by tweet volume.
func (r *statsRepository) TopClubs(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubVolume, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch top clubs: database connection is nil")
	}

	query := `
		SELECT club_name, COUNT(*) AS tweet_count
		FROM tweets` + filterClause + `
		GROUP BY club_name
		ORDER BY tweet_count DESC, club_name
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch top clubs", "error", err)
		return nil, fmt.Errorf("failed to fetch top clubs: %w", err)
	}
	defer rows.Close()

	volumes := []models.ClubVolume{}

	for rows.Next() {
		var volume models.ClubVolume

		if err := rows.Scan(&volume.ClubName, &volume.TweetCount); err != nil {
			return nil, fmt.Errorf("failed to scan top club row: %w", err)
		}

		volumes = append(volumes, volume)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top club rows: %w", err)
	}

	return volumes, nil
}

// ClubBalance returns per-club positive/negative counts ranked by the
// positive/(negative+1) ratio.
func (r *statsRepository) ClubBalance(ctx context.Context, filter models.StatsFilter, limit int) ([]models.ClubBalance, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch club balance: database connection is nil")
	}

	query := `
		SELECT club_name,
		       COUNT(*) FILTER (WHERE sentiment = 'Positive') AS positive,
		       COUNT(*) FILTER (WHERE sentiment = 'Negative') AS negative
		FROM tweets` + filterClause + `
		  AND sentiment <> ''
		GROUP BY club_name
		ORDER BY (COUNT(*) FILTER (WHERE sentiment = 'Positive'))::float
		         / (COUNT(*) FILTER (WHERE sentiment = 'Negative') + 1) DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.Year, filter.Club, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch club balance", "error", err)
		return nil, fmt.Errorf("failed to fetch club balance: %w", err)
	}
	defer rows.Close()

	balances := []models.ClubBalance{}

	for rows.Next() {
		var balance models.ClubBalance

		if err := rows.Scan(&balance.ClubName, &balance.Positive, &balance.Negative); err != nil {
			return nil, fmt.Errorf("failed to scan club balance row: %w", err)
		}

		balance.Ratio = float64(balance.Positive) / float64(balance.Negative+1)
		balances = append(balances, balance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate club balance rows: %w", err)
	}

	return balances, nil
}

// Clubs returns the distinct club names, sorted, for the filter dropdown.
func (r *statsRepository) Clubs(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch clubs: database connection is nil")
	}

	query := `SELECT DISTINCT club_name FROM tweets ORDER BY club_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch clubs", "error", err)
		return nil, fmt.Errorf("failed to fetch clubs: %w", err)
	}
	defer rows.Close()

	clubs := []string{}

	for rows.Next() {
		var club string

		if err := rows.Scan(&club); err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}

		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate club rows: %w", err)
	}

	return clubs, nil
}

// Years returns the distinct posting years, sorted, for the filter dropdown.
func (r *statsRepository) Years(ctx context.Context) ([]int, error) {
	if r.db == nil {
		return nil, fmt.Errorf("failed to fetch years: database connection is nil")
	}

	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM posted_at)::int AS year
		FROM tweets
		WHERE posted_at > to_timestamp(0)
		ORDER BY year`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch years", "error", err)
		return nil, fmt.Errorf("failed to fetch years: %w", err)
	}
	defer rows.Close()

	years := []int{}

	for rows.Next() {
		var year int

		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year row: %w", err)
		}

		years = append(years, year)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate year rows: %w", err)
	}

	return years, nil
}
