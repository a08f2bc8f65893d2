package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

func chartDates(n int) []time.Time {
	start := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func TestLineChart(t *testing.T) {
	dates := chartDates(5)
	series := []NamedSeries{{Name: "close", Values: []float64{100, 101, 99, 102, 103}}}

	svg := LineChart(dates, series, DefaultChartStyle())
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a complete SVG document")
	}
	if !strings.Contains(svg, "close") {
		t.Error("legend label missing")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("no line path rendered")
	}
}

func TestLineChartNaNGap(t *testing.T) {
	dates := chartDates(5)
	series := []NamedSeries{{Name: "sma", Values: []float64{math.NaN(), math.NaN(), 100, 101, 102}}}

	svg := LineChart(dates, series, DefaultChartStyle())
	// Warm-up NaNs start a fresh subpath, so exactly one M command with
	// three points follows; the undefined positions draw nothing.
	if strings.Count(svg, "M") == 0 {
		t.Error("no move command in path")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("NaN leaked into SVG output")
	}
}

func TestLineChartEmpty(t *testing.T) {
	svg := LineChart(nil, nil, DefaultChartStyle())
	if !strings.Contains(svg, "No data available") {
		t.Error("empty chart should carry a placeholder message")
	}
}

func TestLineChartAllNaN(t *testing.T) {
	dates := chartDates(3)
	series := []NamedSeries{{Name: "x", Values: []float64{math.NaN(), math.NaN(), math.NaN()}}}
	svg := LineChart(dates, series, DefaultChartStyle())
	if !strings.Contains(svg, "No defined values") {
		t.Error("all-NaN series should render the placeholder")
	}
}

func TestCandlestickChart(t *testing.T) {
	bars := []models.PriceBar{
		{Date: chartDates(2)[0], Open: 100, High: 103, Low: 99, Close: 102},
		{Date: chartDates(2)[1], Open: 102, High: 104, Low: 100, Close: 101},
	}
	overlays := []NamedSeries{{Name: "ema", Values: []float64{math.NaN(), 101.5}}}

	svg := CandlestickChart(bars, overlays, ChartStyle{Title: "AAPL"})
	if !strings.Contains(svg, "AAPL") {
		t.Error("title missing")
	}
	if !strings.Contains(svg, "<rect") {
		t.Error("no candle bodies rendered")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("NaN leaked into SVG output")
	}
}

func TestBarChart(t *testing.T) {
	rows := []PublisherCount{
		{Publisher: "Reuters & Co <press>", Count: 10},
		{Publisher: "Benzinga", Count: 4},
	}
	svg := BarChart(rows, DefaultChartStyle())
	if !strings.Contains(svg, "&amp;") || !strings.Contains(svg, "&lt;press&gt;") {
		t.Error("publisher names not XML-escaped")
	}
	if !strings.Contains(svg, "Benzinga") {
		t.Error("row label missing")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`a<b>&"c"'d'`); got != "a&lt;b&gt;&amp;&quot;c&quot;&apos;d&apos;" {
		t.Errorf("escapeXML = %q", got)
	}
}
