// Package correlate joins daily sentiment aggregates against daily returns
// and measures their association. The join is inner (only (ticker, date)
// pairs present and defined on both sides contribute) and every
// coefficient is reported together with the sample size it came from.
package correlate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/seenimoa/finpulse/pkg/models"
)

// ErrInsufficientData is returned when fewer than the minimum number of
// paired observations remain after the join; a correlation over fewer than
// two pairs is undefined.
var ErrInsufficientData = errors.New("insufficient paired observations for correlation")

// Options configures the correlator.
type Options struct {
	// MinSamples is the smallest acceptable number of joined pairs.
	// Values below 2 are raised to 2.
	MinSamples int

	// Concurrency bounds the per-ticker fan-out of Batch. Zero means 4.
	Concurrency int
}

// Align inner-joins mean daily sentiment with daily returns on the calendar
// date. Dates missing from either side, and dates whose return is undefined
// (the first bar of a series), produce no point. Output is ascending by
// date.
func Align(daily []models.DailySentiment, bars []models.PriceBar) []models.AlignedPoint {
	returns := returnsByDate(bars)

	var points []models.AlignedPoint
	for _, d := range daily {
		r, ok := returns[d.Date.Unix()]
		if !ok || math.IsNaN(r) || math.IsNaN(d.Score) {
			continue
		}
		points = append(points, models.AlignedPoint{
			Ticker:    d.Ticker,
			Date:      d.Date,
			Sentiment: d.Score,
			Return:    r,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// Correlate computes Pearson and Spearman correlation over aligned points.
func Correlate(ticker string, points []models.AlignedPoint, opts Options) (*models.CorrelationResult, error) {
	minSamples := opts.MinSamples
	if minSamples < 2 {
		minSamples = 2
	}
	if len(points) < minSamples {
		return nil, fmt.Errorf("%w: ticker %s has n=%d, need >= %d",
			ErrInsufficientData, ticker, len(points), minSamples)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Sentiment
		ys[i] = p.Return
	}

	result := &models.CorrelationResult{
		Ticker:   ticker,
		Pearson:  stat.Correlation(xs, ys, nil),
		Spearman: stat.Correlation(ranks(xs), ranks(ys), nil),
		N:        len(points),
		From:     points[0].Date,
		To:       points[len(points)-1].Date,
	}
	return result, nil
}

// TickerRunner produces a correlation result for one ticker. Implementations
// typically fetch bars, align them against precomputed daily sentiment, and
// call Correlate.
type TickerRunner func(ctx context.Context, ticker string) (*models.CorrelationResult, error)

// Batch runs many tickers concurrently. Each ticker's pipeline is fully
// independent, so failures are isolated: a ticker that errors (including
// ErrInsufficientData) lands in the error map and the rest of the batch
// still completes.
func Batch(ctx context.Context, tickers []string, run TickerRunner, opts Options) (map[string]*models.CorrelationResult, map[string]error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var mu sync.Mutex
	results := make(map[string]*models.CorrelationResult)
	failures := make(map[string]error)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, ticker := range tickers {
		g.Go(func() error {
			res, err := run(gctx, ticker)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[ticker] = err
				return nil // per-ticker errors never abort the batch
			}
			results[ticker] = res
			return nil
		})
	}
	// Runners never return errors through the group; Wait only propagates
	// context cancellation.
	_ = g.Wait()

	return results, failures
}

// returnsByDate computes daily returns keyed by calendar date.
func returnsByDate(bars []models.PriceBar) map[int64]float64 {
	out := make(map[int64]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		out[bars[i].Date.Unix()] = bars[i].Close/prev - 1
	}
	return out
}

// ranks converts values to fractional ranks (ties share their average
// rank), turning Pearson on ranks into Spearman's rho.
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranked := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank for the tie group [i, j].
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[idx[k]] = avg
		}
		i = j + 1
	}
	return ranked
}
