// Package report produces the pipeline's human-facing outputs: summary
// statistics tables and SVG charts. Chart cosmetics travel in an explicit
// ChartStyle value passed to each render call; there is no process-wide
// style state.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

// PublisherCount is one row of the per-publisher headline tally.
type PublisherCount struct {
	Publisher string
	Count     int
}

// CountByPublisher tallies headlines per publisher, descending by count.
func CountByPublisher(records []models.NewsRecord) []PublisherCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Publisher]++
	}
	out := make([]PublisherCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, PublisherCount{Publisher: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Publisher < out[j].Publisher
	})
	return out
}

// TopEmailDomains tallies the email domains extracted from publisher
// strings, descending, at most limit rows.
func TopEmailDomains(records []models.NewsRecord, limit int) []PublisherCount {
	counts := make(map[string]int)
	for _, r := range records {
		if r.EmailDomain != "" {
			counts[r.EmailDomain]++
		}
	}
	out := make([]PublisherCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, PublisherCount{Publisher: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Publisher < out[j].Publisher
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Gini measures inequality of a count distribution: 0 when every publisher
// contributes equally, approaching 1 when one publisher dominates.
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var weighted, total float64
	for i, v := range sorted {
		weighted += float64(i+1) * v
		total += v
	}
	if total == 0 {
		return 0
	}
	return (2*weighted)/(float64(n)*total) - float64(n+1)/float64(n)
}

// Spike marks one day whose article volume exceeded the spike threshold.
type Spike struct {
	Index int
	Value float64
}

// Spikes returns the positions of a series that exceed
// mean + thresholdStd * stddev. NaN entries are ignored.
func Spikes(series []float64, thresholdStd float64) []Spike {
	var sum, count float64
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return nil
	}
	mean := sum / count

	var sumSq float64
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / count)
	threshold := mean + thresholdStd*std

	var spikes []Spike
	for i, v := range series {
		if !math.IsNaN(v) && v > threshold {
			spikes = append(spikes, Spike{Index: i, Value: v})
		}
	}
	return spikes
}

// DailyVolumes returns the per-day headline counts, ascending by date. Rows
// without a valid publication date are excluded.
func DailyVolumes(records []models.NewsRecord) ([]time.Time, []float64) {
	counts := make(map[int64]int)
	for _, r := range records {
		if r.PublishedAt.IsZero() {
			continue
		}
		counts[r.Date().Unix()]++
	}

	keys := make([]int64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	dates := make([]time.Time, len(keys))
	volumes := make([]float64, len(keys))
	for i, k := range keys {
		dates[i] = time.Unix(k, 0).UTC()
		volumes[i] = float64(counts[k])
	}
	return dates, volumes
}

// LengthDistribution summarizes the headline-length column.
type LengthDistribution struct {
	Min    int
	Max    int
	Mean   float64
	Median float64
}

// HeadlineLengths computes the distribution summary of headline lengths.
func HeadlineLengths(records []models.NewsRecord) LengthDistribution {
	if len(records) == 0 {
		return LengthDistribution{}
	}
	lengths := make([]int, len(records))
	sum := 0
	for i, r := range records {
		lengths[i] = r.HeadlineLength
		sum += r.HeadlineLength
	}
	sort.Ints(lengths)

	dist := LengthDistribution{
		Min:  lengths[0],
		Max:  lengths[len(lengths)-1],
		Mean: float64(sum) / float64(len(lengths)),
	}
	mid := len(lengths) / 2
	if len(lengths)%2 == 0 {
		dist.Median = float64(lengths[mid-1]+lengths[mid]) / 2
	} else {
		dist.Median = float64(lengths[mid])
	}
	return dist
}

// SummaryText renders the dataset summary block printed by the report
// command.
func SummaryText(records []models.NewsRecord) string {
	var sb strings.Builder

	publishers := CountByPublisher(records)
	counts := make([]float64, len(publishers))
	for i, p := range publishers {
		counts[i] = float64(p.Count)
	}

	fmt.Fprintf(&sb, "Headlines: %d across %d publishers (Gini %.3f)\n",
		len(records), len(publishers), Gini(counts))

	dist := HeadlineLengths(records)
	fmt.Fprintf(&sb, "Headline length: min %d, median %.0f, mean %.1f, max %d\n",
		dist.Min, dist.Median, dist.Mean, dist.Max)

	// Article-volume spike days: count above mean + 2 standard deviations.
	dates, volumes := DailyVolumes(records)
	if spikes := Spikes(volumes, 2); len(spikes) > 0 {
		sb.WriteString("Spike days (volume > mean + 2 std):\n")
		for _, s := range spikes {
			fmt.Fprintf(&sb, "  %s  %d headlines\n",
				dates[s.Index].Format("2006-01-02"), int(s.Value))
		}
	}

	top := publishers
	if len(top) > 10 {
		top = top[:10]
	}
	sb.WriteString("Top publishers:\n")
	for _, p := range top {
		fmt.Fprintf(&sb, "  %-40s %d\n", p.Publisher, p.Count)
	}

	if domains := TopEmailDomains(records, 5); len(domains) > 0 {
		sb.WriteString("Top email domains:\n")
		for _, d := range domains {
			fmt.Fprintf(&sb, "  %-40s %d\n", d.Publisher, d.Count)
		}
	}

	return sb.String()
}

// CorrelationTable renders per-ticker correlation results, always pairing
// each coefficient with its sample size.
func CorrelationTable(results []models.CorrelationResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s %10s %10s %6s  %s\n", "TICKER", "PEARSON", "SPEARMAN", "N", "RANGE")
	for _, r := range results {
		fmt.Fprintf(&sb, "%-10s %10.4f %10.4f %6d  %s to %s\n",
			r.Ticker, r.Pearson, r.Spearman, r.N,
			r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	}
	return sb.String()
}
