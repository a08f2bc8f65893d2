package models

import "time"

// PriceBar represents a single daily OHLCV observation for one ticker.
// Bars in a series are unique and ascending by date; indicator functions
// rely on that ordering.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close,omitempty"`
	Volume   int64     `json:"volume"`
}

// Closes extracts the close column from a bar slice.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// IndicatorSet bundles the derived indicator series for one ticker. Every
// series has the same length as the input bars; warm-up positions hold NaN,
// never zero.
type IndicatorSet struct {
	Ticker  string
	Dates   []time.Time
	SMA     map[int][]float64
	EMA     map[int][]float64
	RSI     []float64
	MACD    []float64
	Signal  []float64
	Hist    []float64
	Returns []float64
}
