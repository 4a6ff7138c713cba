package models

// StatsFilter narrows aggregations to a year and/or club. Zero values mean
// no filtering, matching the dashboard's "All" selections.
type StatsFilter struct {
	Year int    `json:"year,omitempty"`
	Club string `json:"club,omitempty"`
}

// Overview backs the metric row at the top of the dashboard.
type Overview struct {
	TotalTweets int            `json:"total_tweets"`
	BySentiment map[string]int `json:"by_sentiment"`
	ClubCount   int            `json:"club_count"`
}

// DistributionSlice is one slice of the sentiment composition pie.
type DistributionSlice struct {
	Sentiment string  `json:"sentiment"`
	Count     int     `json:"count"`
	Share     float64 `json:"share"`
}

// ClubSentimentCount is one bar of the club-wise sentiment breakdown.
type ClubSentimentCount struct {
	ClubName  string `json:"club_name"`
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// YearlyTrendPoint is one point of the sentiment-over-years line.
type YearlyTrendPoint struct {
	Year      int    `json:"year"`
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// MonthlyTrendPoint is one point of the monthly activity line. Month is
// formatted YYYY-MM.
type MonthlyTrendPoint struct {
	Month     string `json:"month"`
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// ClubVolume is one row of the top-clubs-by-volume ranking.
type ClubVolume struct {
	ClubName   string `json:"club_name"`
	TweetCount int    `json:"tweet_count"`
}

// ClubBalance captures the positive/negative balance bubble per club.
// Ratio is positive/(negative+1) so all-positive clubs stay finite.
type ClubBalance struct {
	ClubName string  `json:"club_name"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Ratio    float64 `json:"ratio"`
}

// WordCount is one term of the word cloud.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
