package dataset

import (
	"reflect"
	"testing"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

func TestFeaturize(t *testing.T) {
	in := []models.NewsRecord{
		{
			Headline:    "Stocks That Hit 52-Week Highs",
			Publisher:   "john.doe@reuters.com",
			PublishedAt: time.Date(2020, 6, 5, 14, 30, 54, 0, time.UTC),
			Ticker:      "A",
		},
	}
	out := Featurize(in)

	r := out[0]
	if r.HeadlineLength != len("Stocks That Hit 52-Week Highs") {
		t.Errorf("headline length: got %d", r.HeadlineLength)
	}
	if r.WordCount != 5 {
		t.Errorf("word count: got %d, want 5", r.WordCount)
	}
	if r.EmailDomain != "reuters.com" {
		t.Errorf("email domain: got %q", r.EmailDomain)
	}
	if r.Year != 2020 || r.Month != 6 || r.Day != 5 || r.Hour != 14 {
		t.Errorf("date parts: got %d-%d-%d %d", r.Year, r.Month, r.Day, r.Hour)
	}
	if r.DayOfWeek != "Friday" {
		t.Errorf("day of week: got %q, want Friday", r.DayOfWeek)
	}

	// Input must not be mutated.
	if in[0].HeadlineLength != 0 {
		t.Error("Featurize mutated its input")
	}
}

func TestFeaturizeZeroDate(t *testing.T) {
	out := Featurize([]models.NewsRecord{
		{Headline: "flagged row", Flags: []string{FlagInvalidDate}},
	})
	r := out[0]
	if r.Year != 0 || r.Month != 0 || r.Day != 0 || r.Hour != 0 || r.DayOfWeek != "" {
		t.Errorf("date parts must stay zero for invalid dates: %+v", r)
	}
	if r.HeadlineLength == 0 {
		t.Error("text features should still be derived")
	}
}

func TestFeaturizeDeterministic(t *testing.T) {
	in := []models.NewsRecord{
		{Headline: "Shares surge", Publisher: "Benzinga", PublishedAt: time.Date(2020, 1, 2, 9, 0, 0, 0, time.UTC)},
	}
	a := Featurize(in)
	b := Featurize(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("Featurize is not deterministic")
	}
}
