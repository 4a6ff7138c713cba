package repository

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fan-pulse/models"
)

func TestStatsRepository_Overview(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COUNT\\(DISTINCT club_name\\)").
		WithArgs(0, "").
		WillReturnRows(pgxmock.NewRows([]string{"count", "clubs"}).AddRow(1500, 24))

	mock.ExpectQuery("SELECT sentiment, COUNT\\(\\*\\)").
		WithArgs(0, "").
		WillReturnRows(pgxmock.NewRows([]string{"sentiment", "count"}).
			AddRow("Negative", 800).
			AddRow("Positive", 700))

	overview, err := repo.Overview(ctx, models.StatsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1500, overview.TotalTweets)
	assert.Equal(t, 24, overview.ClubCount)
	assert.Equal(t, 700, overview.BySentiment["Positive"])
	assert.Equal(t, 800, overview.BySentiment["Negative"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_Distribution_Shares(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT sentiment, COUNT\\(\\*\\)").
		WithArgs(2021, "Liverpool").
		WillReturnRows(pgxmock.NewRows([]string{"sentiment", "count"}).
			AddRow("Positive", 30).
			AddRow("Negative", 10))

	slices, err := repo.Distribution(context.Background(), models.StatsFilter{Year: 2021, Club: "Liverpool"})
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "Positive", slices[0].Sentiment)
	assert.InDelta(t, 0.75, slices[0].Share, 1e-9)
	assert.InDelta(t, 0.25, slices[1].Share, 1e-9)
}

func TestStatsRepository_Distribution_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT sentiment, COUNT\\(\\*\\)").
		WillReturnRows(pgxmock.NewRows([]string{"sentiment", "count"}))

	slices, err := repo.Distribution(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	assert.Empty(t, slices)
}

func TestStatsRepository_ClubComparison(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT club_name, sentiment, COUNT\\(\\*\\)").
		WithArgs(0, "").
		WillReturnRows(pgxmock.NewRows([]string{"club_name", "sentiment", "count"}).
			AddRow("Arsenal", "Negative", 12).
			AddRow("Arsenal", "Positive", 20).
			AddRow("Chelsea", "Positive", 9))

	counts, err := repo.ClubComparison(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, models.ClubSentimentCount{ClubName: "Arsenal", Sentiment: "Negative", Count: 12}, counts[0])
}

func TestStatsRepository_YearlyTrends(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT EXTRACT\\(YEAR FROM posted_at\\)::int AS year, sentiment, COUNT\\(\\*\\)").
		WithArgs(0, "").
		WillReturnRows(pgxmock.NewRows([]string{"year", "sentiment", "count"}).
			AddRow(2019, "Positive", 110).
			AddRow(2020, "Negative", 95))

	points, err := repo.YearlyTrends(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 2019, points[0].Year)
	assert.Equal(t, 95, points[1].Count)
}

func TestStatsRepository_MonthlyTrends(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT to_char\\(date_trunc\\('month', posted_at\\), 'YYYY-MM'\\)").
		WithArgs(2021, "").
		WillReturnRows(pgxmock.NewRows([]string{"month", "sentiment", "count"}).
			AddRow("2021-04", "Positive", 40).
			AddRow("2021-05", "Negative", 25))

	points, err := repo.MonthlyTrends(context.Background(), models.StatsFilter{Year: 2021})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2021-04", points[0].Month)
}

func TestStatsRepository_TopClubs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT club_name, COUNT\\(\\*\\) AS tweet_count").
		WithArgs(0, "", 10).
		WillReturnRows(pgxmock.NewRows([]string{"club_name", "tweet_count"}).
			AddRow("Real Madrid", 120).
			AddRow("Barcelona", 110))

	volumes, err := repo.TopClubs(context.Background(), models.StatsFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, "Real Madrid", volumes[0].ClubName)
	assert.Equal(t, 120, volumes[0].TweetCount)
}

func TestStatsRepository_ClubBalance_ComputesRatio(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT club_name,").
		WithArgs(0, "", 20).
		WillReturnRows(pgxmock.NewRows([]string{"club_name", "positive", "negative"}).
			AddRow("Ajax", 30, 0).
			AddRow("Porto", 10, 4))

	balances, err := repo.ClubBalance(context.Background(), models.StatsFilter{}, 20)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	// positive/(negative+1) keeps all-positive clubs finite
	assert.InDelta(t, 30.0, balances[0].Ratio, 1e-9)
	assert.InDelta(t, 2.0, balances[1].Ratio, 1e-9)
}

func TestStatsRepository_ClubsAndYears(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT DISTINCT club_name").
		WillReturnRows(pgxmock.NewRows([]string{"club_name"}).AddRow("Ajax").AddRow("Bayern"))

	clubs, err := repo.Clubs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ajax", "Bayern"}, clubs)

	mock.ExpectQuery("SELECT DISTINCT EXTRACT\\(YEAR FROM posted_at\\)::int").
		WillReturnRows(pgxmock.NewRows([]string{"year"}).AddRow(2019).AddRow(2020))

	years, err := repo.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2020}, years)
}

func TestStatsRepository_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStatsRepository(mock, testLoggerRepo())

	mock.ExpectQuery("SELECT sentiment, COUNT\\(\\*\\)").
		WillReturnError(errors.New("relation does not exist"))

	_, err = repo.Distribution(context.Background(), models.StatsFilter{})
	assert.Error(t, err)
}
