package models

import "time"

// AlignedPoint is one joined observation of mean daily sentiment and daily
// return for a (ticker, date) pair. Only dates present on both sides of the
// join produce a point.
type AlignedPoint struct {
	Ticker    string    `json:"ticker"`
	Date      time.Time `json:"date"`
	Sentiment float64   `json:"sentiment"`
	Return    float64   `json:"return"`
}

// CorrelationResult is a correlation coefficient together with the sample
// size it was computed from. A coefficient without its N is not a valid
// result, so the two always travel together.
type CorrelationResult struct {
	Ticker   string    `json:"ticker"`
	Pearson  float64   `json:"pearson"`
	Spearman float64   `json:"spearman"`
	N        int       `json:"n"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}
