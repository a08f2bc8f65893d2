package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

func newsWithPublishers(publishers ...string) []models.NewsRecord {
	records := make([]models.NewsRecord, len(publishers))
	for i, p := range publishers {
		records[i] = models.NewsRecord{Headline: "h", Publisher: p}
	}
	return records
}

func TestCountByPublisher(t *testing.T) {
	records := newsWithPublishers("B", "A", "A", "C", "A", "B")
	counts := CountByPublisher(records)
	if len(counts) != 3 {
		t.Fatalf("expected 3 publishers, got %d", len(counts))
	}
	if counts[0].Publisher != "A" || counts[0].Count != 3 {
		t.Errorf("top row: %+v", counts[0])
	}
	// Equal counts break ties by name.
	if counts[1].Publisher != "B" || counts[2].Publisher != "C" {
		t.Errorf("tie ordering: %+v", counts[1:])
	}
}

func TestTopEmailDomains(t *testing.T) {
	records := []models.NewsRecord{
		{EmailDomain: "reuters.com"},
		{EmailDomain: "reuters.com"},
		{EmailDomain: "benzinga.com"},
		{EmailDomain: ""},
	}
	domains := TopEmailDomains(records, 1)
	if len(domains) != 1 {
		t.Fatalf("limit not applied, got %d rows", len(domains))
	}
	if domains[0].Publisher != "reuters.com" || domains[0].Count != 2 {
		t.Errorf("top domain: %+v", domains[0])
	}
}

func TestGini(t *testing.T) {
	if g := Gini([]float64{5, 5, 5, 5}); math.Abs(g) > 1e-12 {
		t.Errorf("equal counts: got %v, want 0", g)
	}
	if g := Gini([]float64{0, 0, 0, 100}); g < 0.7 {
		t.Errorf("dominated distribution should be high, got %v", g)
	}
	if g := Gini(nil); g != 0 {
		t.Errorf("empty input: got %v, want 0", g)
	}
	if g := Gini([]float64{0, 0}); g != 0 {
		t.Errorf("all-zero input: got %v, want 0", g)
	}
}

func TestSpikes(t *testing.T) {
	series := []float64{10, 11, 9, 10, 50, 10, math.NaN(), 11}
	spikes := Spikes(series, 2)
	if len(spikes) != 1 {
		t.Fatalf("expected 1 spike, got %d", len(spikes))
	}
	if spikes[0].Index != 4 || spikes[0].Value != 50 {
		t.Errorf("spike: %+v", spikes[0])
	}

	if s := Spikes([]float64{math.NaN(), math.NaN()}, 2); s != nil {
		t.Errorf("all-NaN series should yield no spikes, got %v", s)
	}
}

func TestHeadlineLengths(t *testing.T) {
	records := []models.NewsRecord{
		{HeadlineLength: 10},
		{HeadlineLength: 20},
		{HeadlineLength: 30},
		{HeadlineLength: 100},
	}
	dist := HeadlineLengths(records)
	if dist.Min != 10 || dist.Max != 100 {
		t.Errorf("min/max: %d/%d", dist.Min, dist.Max)
	}
	if dist.Median != 25 {
		t.Errorf("median: got %v, want 25", dist.Median)
	}
	if dist.Mean != 40 {
		t.Errorf("mean: got %v, want 40", dist.Mean)
	}

	if empty := HeadlineLengths(nil); empty != (LengthDistribution{}) {
		t.Errorf("empty input: %+v", empty)
	}
}

func TestDailyVolumes(t *testing.T) {
	d1 := time.Date(2020, 6, 5, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 6, 8, 9, 0, 0, 0, time.UTC)
	records := []models.NewsRecord{
		{Headline: "a", PublishedAt: d1},
		{Headline: "b", PublishedAt: d1.Add(4 * time.Hour)}, // same calendar day
		{Headline: "c", PublishedAt: d2},
		{Headline: "no date"},
	}
	dates, volumes := DailyVolumes(records)
	if len(dates) != 2 || len(volumes) != 2 {
		t.Fatalf("expected 2 days, got %d/%d", len(dates), len(volumes))
	}
	if !dates[0].Before(dates[1]) {
		t.Error("days not ascending")
	}
	if volumes[0] != 2 || volumes[1] != 1 {
		t.Errorf("volumes: got %v", volumes)
	}
	if dates[0].Hour() != 0 {
		t.Errorf("day key not at midnight: %v", dates[0])
	}
}

func TestSummaryTextSpikeDays(t *testing.T) {
	start := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	var records []models.NewsRecord
	// Ten quiet days with two headlines each, one burst day with twenty.
	for day := 0; day < 10; day++ {
		for i := 0; i < 2; i++ {
			records = append(records, models.NewsRecord{
				Headline:    "quiet",
				Publisher:   "Reuters",
				PublishedAt: start.AddDate(0, 0, day),
			})
		}
	}
	burst := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		records = append(records, models.NewsRecord{
			Headline:    "burst",
			Publisher:   "Reuters",
			PublishedAt: burst,
		})
	}

	text := SummaryText(records)
	if !strings.Contains(text, "Spike days") {
		t.Fatalf("summary missing spike-day block:\n%s", text)
	}
	if !strings.Contains(text, "2020-06-15  20 headlines") {
		t.Errorf("burst day not reported:\n%s", text)
	}
	if strings.Contains(text, "2020-06-01  ") {
		t.Errorf("quiet day reported as spike:\n%s", text)
	}
}

func TestSummaryText(t *testing.T) {
	records := []models.NewsRecord{
		{Headline: "a", Publisher: "Reuters", HeadlineLength: 1, EmailDomain: "reuters.com"},
		{Headline: "bb", Publisher: "Reuters", HeadlineLength: 2},
		{Headline: "ccc", Publisher: "Benzinga", HeadlineLength: 3},
	}
	text := SummaryText(records)
	for _, want := range []string{"Headlines: 3", "Reuters", "reuters.com", "Headline length:"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestCorrelationTable(t *testing.T) {
	results := []models.CorrelationResult{
		{
			Ticker:   "AAPL",
			Pearson:  0.1234,
			Spearman: -0.5,
			N:        17,
			From:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2020, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	table := CorrelationTable(results)
	for _, want := range []string{"AAPL", "0.1234", "-0.5000", "17", "2020-06-01 to 2020-06-30"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
