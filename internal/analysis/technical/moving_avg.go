package technical

import "math"

// SMA calculates the Simple Moving Average for the given period. The result
// has the same length as the input; the first period-1 positions are NaN
// because the window has insufficient history there, and an undefined
// marker must never be confused with a zero price.
func SMA(data []float64, period int) []float64 {
	n := len(data)
	if period <= 0 {
		period = 1
	}
	result := nanSlice(n)
	if n < period {
		return result
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	result[period-1] = sum / float64(period)

	for i := period; i < n; i++ {
		sum += data[i] - data[i-period]
		result[i] = sum / float64(period)
	}

	return result
}

// EMA calculates the Exponential Moving Average for the given period,
// seeded with the SMA of the first period values. Positions before the seed
// are NaN.
func EMA(data []float64, period int) []float64 {
	n := len(data)
	if period <= 0 {
		period = 1
	}
	result := nanSlice(n)
	if n < period {
		return result
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	result[period-1] = sum / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < n; i++ {
		result[i] = data[i]*k + result[i-1]*(1-k)
	}

	return result
}

// Latest returns the last defined value of a series, or NaN when the whole
// series is undefined.
func Latest(series []float64) float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i]
		}
	}
	return math.NaN()
}

// nanSlice allocates a series of n undefined values.
func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
