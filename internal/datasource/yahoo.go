package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// Yahoo implements BarProvider using the Yahoo Finance v8 chart API.
type Yahoo struct {
	cache   *BarCache
	limiter *RateLimiter
}

// NewYahoo creates a new Yahoo Finance bar provider.
func NewYahoo() *Yahoo {
	return &Yahoo{
		cache:   NewBarCache(15 * time.Minute),
		limiter: NewRateLimiter(5, time.Second),
	}
}

// Name returns the provider name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance v8 chart API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfIndicators struct {
	Quote    []yfOHLCV    `json:"quote"`
	AdjClose []yfAdjClose `json:"adjclose"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yfAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GetDailyBars returns daily bars from the Yahoo Finance chart API.
func (y *Yahoo) GetDailyBars(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error) {
	symbol := utils.NormalizeTicker(ticker)
	cacheKey := fmt.Sprintf("yahoo:bars:%s:%d:%d", symbol, from.Unix(), to.Unix())
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%2Csplit",
		symbol, from.Unix(), to.Unix(),
	)

	body, status, err := doGet(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		if status == 404 {
			return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
		}
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo chart: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}

	bars := parseYahooBars(resp.Chart.Result[0])
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBars, symbol)
	}

	y.cache.Set(cacheKey, bars)
	return bars, nil
}

// parseYahooBars converts the parallel pointer slices of the chart response
// into bars. Slots where the market was closed or data is absent come back
// as nulls and are skipped entirely: a bar is only emitted when its close
// is present, keeping dates unique and the series dense.
func parseYahooBars(result yfChartResult) []models.PriceBar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]

	var adjCloses []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		b := models.PriceBar{
			Date:  utils.DateOnly(time.Unix(ts, 0)),
			Close: *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			b.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			b.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			b.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
		}
		if i < len(adjCloses) && adjCloses[i] != nil {
			b.AdjClose = *adjCloses[i]
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}
