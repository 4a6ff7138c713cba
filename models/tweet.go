package models

import (
	"time"
)

// Sentiment labels as stored and served. The hosted model emits upper-case
// POSITIVE/NEGATIVE; labels are capitalized on the way in.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Tweet is a single club tweet from the dataset.
type Tweet struct {
	ID          string    `db:"id" json:"id"`
	ClubName    string    `db:"club_name" json:"club_name"`
	Text        string    `db:"text" json:"text"`
	PostedAt    time.Time `db:"posted_at" json:"posted_at"`
	Sentiment   string    `db:"sentiment" json:"sentiment,omitempty"`
	Score       float64   `db:"score" json:"score,omitempty"`
	ContentHash string    `db:"content_hash" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// SentimentResult is the result from the classifier API for one tweet.
type SentimentResult struct {
	TweetID string  `json:"tweet_id"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
}
