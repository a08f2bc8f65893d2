package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// Alpaca implements BarProvider using the Alpaca Market Data v2 API via the
// official SDK. Requires API credentials.
type Alpaca struct {
	client *marketdata.Client
	cache  *BarCache
}

// NewAlpaca creates an Alpaca bar provider with the given credentials.
func NewAlpaca(apiKey, apiSecret string) *Alpaca {
	return &Alpaca{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		cache: NewBarCache(15 * time.Minute),
	}
}

// Name returns the provider name.
func (a *Alpaca) Name() string { return "Alpaca" }

// GetDailyBars returns split-adjusted daily bars from Alpaca.
func (a *Alpaca) GetDailyBars(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error) {
	symbol := utils.NormalizeTicker(ticker)
	cacheKey := fmt.Sprintf("alpaca:bars:%s:%d:%d", symbol, from.Unix(), to.Unix())
	if cached, ok := a.cache.Get(cacheKey); ok {
		return cached, nil
	}

	raw, err := a.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      from,
		End:        to,
		Adjustment: marketdata.Split,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBars, symbol)
	}

	bars := make([]models.PriceBar, len(raw))
	for i, b := range raw {
		bars[i] = models.PriceBar{
			Date:   utils.DateOnly(b.Timestamp),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		}
	}

	a.cache.Set(cacheKey, bars)
	return bars, nil
}
