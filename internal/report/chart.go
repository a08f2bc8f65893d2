package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

// ChartStyle holds rendering parameters for SVG charts. Callers pass a
// style to every render call instead of mutating shared defaults.
type ChartStyle struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BgColor      string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartStyle returns sensible defaults for chart rendering.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Width:        800,
		Height:       400,
		MarginTop:    40,
		MarginRight:  60,
		MarginBottom: 50,
		MarginLeft:   70,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// seriesColors cycles across overlay lines.
var seriesColors = []string{"#1976d2", "#e53935", "#43a047", "#fb8c00", "#8e24aa"}

// plotArea returns the usable drawing area.
func (c ChartStyle) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

func (c ChartStyle) orDefaults() ChartStyle {
	if c.Width == 0 {
		d := DefaultChartStyle()
		d.Title = c.Title
		return d
	}
	return c
}

// NamedSeries is one labeled line of a line chart. NaN values break the
// line: undefined warm-up positions render as gaps, not as zeros.
type NamedSeries struct {
	Name   string
	Values []float64
}

// LineChart renders one or more series over a shared date axis as SVG.
func LineChart(dates []time.Time, series []NamedSeries, style ChartStyle) string {
	style = style.orDefaults()
	if len(dates) == 0 || len(series) == 0 {
		return emptySVG(style, "No data available")
	}

	px, py, pw, ph := style.plotArea()

	// Value range across all defined points.
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}
	if minV > maxV {
		return emptySVG(style, "No defined values")
	}
	span := maxV - minV
	if span < 1e-9 {
		span = 1
	}
	minV -= span * 0.05
	maxV += span * 0.05
	span = maxV - minV

	var sb strings.Builder
	sb.WriteString(svgHeader(style))
	sb.WriteString(chartFrame(style))

	// Horizontal grid and value labels.
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		v := minV + span*float64(i)/float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, style.GridColor)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+4, style.FontSize, style.TextColor, formatValue(v))
	}

	// Date labels at the edges and middle.
	for _, frac := range []float64{0, 0.5, 1} {
		i := int(frac * float64(len(dates)-1))
		x := px + int(frac*float64(pw))
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			x, py+ph+18, style.FontSize, style.TextColor, dates[i].Format("2006-01-02"))
	}

	xAt := func(i int) float64 {
		if len(dates) == 1 {
			return float64(px)
		}
		return float64(px) + float64(i)*float64(pw)/float64(len(dates)-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-minV)/span*float64(ph)
	}

	for si, s := range series {
		color := seriesColors[si%len(seriesColors)]
		var path strings.Builder
		pen := false
		for i, v := range s.Values {
			if math.IsNaN(v) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			fmt.Fprintf(&path, "%s%.1f %.1f ", cmd, xAt(i), yAt(v))
		}
		fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`,
			strings.TrimSpace(path.String()), color)

		// Legend entry.
		lx := px + 10 + si*120
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="10" height="3" fill="%s"/>`, lx, py+8, color)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s">%s</text>`,
			lx+14, py+12, style.FontSize, style.TextColor, escapeXML(s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CandlestickChart renders daily bars with optional overlay lines (SMA,
// EMA) sharing the bar index axis.
func CandlestickChart(bars []models.PriceBar, overlays []NamedSeries, style ChartStyle) string {
	style = style.orDefaults()
	if len(bars) == 0 {
		return emptySVG(style, "No data available")
	}

	px, py, pw, ph := style.plotArea()

	minP, maxP := bars[0].Low, bars[0].High
	for _, b := range bars {
		minP = math.Min(minP, b.Low)
		maxP = math.Max(maxP, b.High)
	}
	span := maxP - minP
	if span < 1e-9 {
		span = 1
	}
	minP -= span * 0.05
	maxP += span * 0.05
	span = maxP - minP

	var sb strings.Builder
	sb.WriteString(svgHeader(style))
	sb.WriteString(chartFrame(style))

	gridLines := 6
	for i := 0; i <= gridLines; i++ {
		p := minP + span*float64(i)/float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, style.GridColor)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+4, style.FontSize, style.TextColor, formatValue(p))
	}

	n := len(bars)
	slot := float64(pw) / float64(n)
	bodyW := slot * 0.7
	if bodyW > 9 {
		bodyW = 9
	}
	yAt := func(p float64) float64 {
		return float64(py+ph) - (p-minP)/span*float64(ph)
	}

	for i, b := range bars {
		cx := float64(px) + (float64(i)+0.5)*slot
		color := "#43a047"
		if b.Close < b.Open {
			color = "#e53935"
		}
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`,
			cx, yAt(b.High), cx, yAt(b.Low), color)
		top, bottom := yAt(math.Max(b.Open, b.Close)), yAt(math.Min(b.Open, b.Close))
		if bottom-top < 1 {
			bottom = top + 1
		}
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			cx-bodyW/2, top, bodyW, bottom-top, color)
	}

	for si, s := range overlays {
		color := seriesColors[si%len(seriesColors)]
		var path strings.Builder
		pen := false
		for i, v := range s.Values {
			if i >= n || math.IsNaN(v) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			fmt.Fprintf(&path, "%s%.1f %.1f ", cmd, float64(px)+(float64(i)+0.5)*slot, yAt(v))
		}
		fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`,
			strings.TrimSpace(path.String()), color)

		lx := px + 10 + si*110
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s">%s</text>`,
			lx, py+12, style.FontSize, color, escapeXML(s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// BarChart renders a horizontal bar chart, e.g. headline counts per
// publisher.
func BarChart(rows []PublisherCount, style ChartStyle) string {
	style = style.orDefaults()
	if len(rows) == 0 {
		return emptySVG(style, "No data available")
	}

	px, py, pw, ph := style.plotArea()

	maxV := 0
	for _, r := range rows {
		if r.Count > maxV {
			maxV = r.Count
		}
	}
	if maxV == 0 {
		maxV = 1
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(style))
	sb.WriteString(chartFrame(style))

	rowH := float64(ph) / float64(len(rows))
	barH := rowH * 0.65
	for i, r := range rows {
		y := float64(py) + float64(i)*rowH + (rowH-barH)/2
		w := float64(r.Count) / float64(maxV) * float64(pw)
		fmt.Fprintf(&sb, `<rect x="%d" y="%.1f" width="%.1f" height="%.1f" fill="#1976d2"/>`,
			px, y, w, barH)
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+barH/2+4, style.FontSize, style.TextColor, escapeXML(truncate(r.Publisher, 24)))
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%d</text>`,
			float64(px)+w+4, y+barH/2+4, style.FontSize, style.TextColor, r.Count)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// --- SVG helpers ---

func svgHeader(style ChartStyle) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		style.Width, style.Height, style.Width, style.Height)
}

func chartFrame(style ChartStyle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		style.Width, style.Height, style.BgColor)
	if style.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="22" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			style.Width/2, style.TextColor, escapeXML(style.Title))
	}
	return sb.String()
}

func emptySVG(style ChartStyle, msg string) string {
	var sb strings.Builder
	sb.WriteString(svgHeader(style))
	sb.WriteString(chartFrame(style))
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="13" fill="%s" text-anchor="middle">%s</text>`,
		style.Width/2, style.Height/2, style.TextColor, escapeXML(msg))
	sb.WriteString("</svg>")
	return sb.String()
}

func formatValue(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return fmt.Sprintf("%.0f", v)
	case av >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
