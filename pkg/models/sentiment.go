package models

import "time"

// Sentiment labels derived from thresholding the scalar score.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// SentimentScore is the scored form of a single headline.
// Score is bounded to [-1, +1].
type SentimentScore struct {
	Ticker   string    `json:"ticker"`
	Headline string    `json:"headline"`
	Score    float64   `json:"score"`
	Label    string    `json:"label"`
	Date     time.Time `json:"date"` // calendar day, UTC midnight
}

// DailySentiment aggregates per-headline scores for one (ticker, date) pair.
// Score is the arithmetic mean of the N headline scores for that day; this
// choice materially affects the downstream correlation and is fixed here
// rather than left to callers.
type DailySentiment struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	Score  float64   `json:"score"`
	N      int       `json:"n"`
}
