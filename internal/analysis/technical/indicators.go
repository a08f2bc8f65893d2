// Package technical implements technical analysis indicators over daily
// price bars. Every function returns a new series of the same length as its
// input, never mutates the input, and marks warm-up positions with NaN,
// never zero and never a carried-forward value.
package technical

import (
	"math"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

// Params holds the indicator configuration used by ComputeSet.
type Params struct {
	SMAPeriods []int
	EMAPeriods []int
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
}

// DefaultParams are the conventional settings.
func DefaultParams() Params {
	return Params{
		SMAPeriods: []int{20, 50, 200},
		EMAPeriods: []int{12, 26},
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
	}
}

// RSI calculates the Relative Strength Index with Wilder smoothing.
// The first period positions are NaN (the change series needs one prior bar
// and the first average needs period changes). Values are always within
// [0, 100]; when the average loss over the window is zero the RSI saturates
// at 100 instead of dividing by zero.
func RSI(bars []models.PriceBar, period int) []float64 {
	if period <= 0 {
		period = 14
	}
	n := len(bars)
	rsi := nanSlice(n)
	if n < period+1 {
		return rsi
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	rsi[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < n; i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		rsi[i] = rsiValue(avgGain, avgLoss)
	}

	return rsi
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD calculates the Moving Average Convergence Divergence: the difference
// of the fast and slow EMAs, plus a signal line (EMA of the MACD line) and
// the histogram. All three series share the NaN-prefix rule: the MACD line
// is undefined until the slow EMA is defined, the signal until signal
// periods after that.
func MACD(bars []models.PriceBar, fast, slow, signal int) (macd, signalLine, hist []float64) {
	if fast <= 0 {
		fast = 12
	}
	if slow <= 0 {
		slow = 26
	}
	if signal <= 0 {
		signal = 9
	}

	closes := models.Closes(bars)
	n := len(closes)

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	macd = nanSlice(n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// The signal line is an EMA over the defined suffix of the MACD line.
	signalLine = nanSlice(n)
	if start := slow - 1; start < n {
		defined := macd[start:]
		sigDefined := EMA(defined, signal)
		copy(signalLine[start:], sigDefined)
	}

	hist = nanSlice(n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signalLine[i]) {
			hist[i] = macd[i] - signalLine[i]
		}
	}

	return macd, signalLine, hist
}

// DailyReturns computes close-over-close simple returns:
// r_t = close_t/close_{t-1} - 1. The first position is NaN; there is no
// prior close to compare against.
func DailyReturns(bars []models.PriceBar) []float64 {
	n := len(bars)
	returns := nanSlice(n)
	for i := 1; i < n; i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns[i] = bars[i].Close/prev - 1
	}
	return returns
}

// ComputeSet computes the configured indicators for one ticker's bars.
func ComputeSet(ticker string, bars []models.PriceBar, p Params) *models.IndicatorSet {
	if len(bars) == 0 {
		return nil
	}

	closes := models.Closes(bars)
	dates := make([]time.Time, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
	}

	set := &models.IndicatorSet{
		Ticker:  ticker,
		Dates:   dates,
		SMA:     make(map[int][]float64, len(p.SMAPeriods)),
		EMA:     make(map[int][]float64, len(p.EMAPeriods)),
		RSI:     RSI(bars, p.RSIPeriod),
		Returns: DailyReturns(bars),
	}
	for _, period := range p.SMAPeriods {
		set.SMA[period] = SMA(closes, period)
	}
	for _, period := range p.EMAPeriods {
		set.EMA[period] = EMA(closes, period)
	}
	set.MACD, set.Signal, set.Hist = MACD(bars, p.MACDFast, p.MACDSlow, p.MACDSignal)

	return set
}
