package dataset

import (
	"strings"
	"testing"
)

func makeRows() []RawRecord {
	return []RawRecord{
		{Headline: "Shares surge on earnings beat", URL: "https://e.com/1", Publisher: "Reuters", Date: "2020-06-05 10:30:54", Ticker: "A"},
		{Headline: "Shares surge on earnings beat", URL: "https://e.com/1", Publisher: "Reuters", Date: "2020-06-05 10:30:54", Ticker: "A"}, // exact dup
		{Headline: "Shares surge on earnings beat", URL: "https://e.com/2", Publisher: "Benzinga", Date: "2020-06-05 11:00:00", Ticker: "B"}, // headline dup only
		{Headline: "Analysts see downside risk", URL: "https://e.com/3", Publisher: "Benzinga", Date: "2020-06-08 09:00:00", Ticker: "B"},
	}
}

func TestDetectDuplicates(t *testing.T) {
	c := DetectDuplicates(makeRows())
	if c.Rows != 1 {
		t.Errorf("full-row duplicates: got %d, want 1", c.Rows)
	}
	if c.Headlines != 2 {
		t.Errorf("headline duplicates: got %d, want 2", c.Headlines)
	}
	if c.URLs != 1 {
		t.Errorf("url duplicates: got %d, want 1", c.URLs)
	}
	// Full-row duplication is the stricter notion.
	if c.Rows > c.Headlines {
		t.Errorf("row dups (%d) must not exceed headline dups (%d)", c.Rows, c.Headlines)
	}
}

func TestCleanDropsExactDuplicatesOnly(t *testing.T) {
	res := Clean(makeRows(), DefaultPolicy())
	if res.Report.Actions.DroppedDuplicates != 1 {
		t.Errorf("dropped duplicates: got %d, want 1", res.Report.Actions.DroppedDuplicates)
	}
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 cleaned rows, got %d", len(res.Records))
	}
}

func TestCleanInvalidDateDropPolicy(t *testing.T) {
	rows := []RawRecord{
		{Headline: "good row", URL: "u1", Publisher: "p", Date: "2020-06-05 10:30:54", Ticker: "X"},
		{Headline: "bad date row", URL: "u2", Publisher: "p", Date: "not-a-date", Ticker: "X"},
	}
	res := Clean(rows, DefaultPolicy())

	if len(res.Records) != 1 {
		t.Fatalf("expected exactly 1 row under drop policy, got %d", len(res.Records))
	}
	if res.Report.InvalidDates != 1 {
		t.Errorf("invalid dates: got %d, want 1", res.Report.InvalidDates)
	}
	if res.Report.Actions.DroppedInvalidDates != 1 {
		t.Errorf("dropped-invalid-date entries: got %d, want 1", res.Report.Actions.DroppedInvalidDates)
	}
}

func TestCleanInvalidDateFlagPolicy(t *testing.T) {
	rows := []RawRecord{
		{Headline: "bad date row", URL: "u", Publisher: "p", Date: "not-a-date", Ticker: "X"},
	}
	policy := DefaultPolicy()
	policy.Dates = PolicyFlag

	res := Clean(rows, policy)
	if len(res.Records) != 1 {
		t.Fatalf("expected flagged row to be kept, got %d rows", len(res.Records))
	}
	rec := res.Records[0]
	if !rec.HasFlag(FlagInvalidDate) {
		t.Error("kept row missing invalid_date flag")
	}
	if !rec.PublishedAt.IsZero() {
		t.Error("flagged row must not carry a fabricated timestamp")
	}
	if res.Report.Actions.FlaggedInvalidDates != 1 {
		t.Errorf("flagged count: got %d, want 1", res.Report.Actions.FlaggedInvalidDates)
	}
}

func TestCleanEmptyDateFollowsDatesPolicy(t *testing.T) {
	rows := []RawRecord{
		{Headline: "empty date row", URL: "u", Publisher: "p", Date: "", Ticker: "X"},
	}

	// A Missing entry for "date" has no effect; the Dates policy decides.
	policy := DefaultPolicy()
	policy.Missing["date"] = PolicyFill
	policy.Dates = PolicyDrop
	res := Clean(rows, policy)
	if len(res.Records) != 0 {
		t.Fatalf("empty date under drop policy should remove the row, got %d", len(res.Records))
	}
	if res.Report.InvalidDates != 1 || res.Report.Actions.DroppedInvalidDates != 1 {
		t.Errorf("date accounting: %+v", res.Report)
	}
	if res.Report.Actions.FilledMissing != 0 {
		t.Errorf("date column must not be filled, got %d fills", res.Report.Actions.FilledMissing)
	}

	policy.Dates = PolicyFlag
	res = Clean(rows, policy)
	if len(res.Records) != 1 || !res.Records[0].HasFlag(FlagInvalidDate) {
		t.Errorf("empty date under flag policy should keep a flagged row: %+v", res.Records)
	}
}

func TestCleanMissingPolicies(t *testing.T) {
	rows := []RawRecord{
		{Headline: "has publisher", URL: "u1", Publisher: "p", Date: "2020-01-02", Ticker: "X"},
		{Headline: "no publisher", URL: "u2", Publisher: "", Date: "2020-01-03", Ticker: "X"},
		{Headline: "", URL: "u3", Publisher: "p", Date: "2020-01-04", Ticker: "X"},
	}

	policy := DefaultPolicy()
	policy.Missing["publisher"] = PolicyFill

	res := Clean(rows, policy)
	// Empty headline dropped, empty publisher filled.
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Records))
	}
	if res.Report.Actions.DroppedMissing != 1 {
		t.Errorf("dropped missing: got %d, want 1", res.Report.Actions.DroppedMissing)
	}
	if res.Report.Actions.FilledMissing != 1 {
		t.Errorf("filled missing: got %d, want 1", res.Report.Actions.FilledMissing)
	}
	found := false
	for _, r := range res.Records {
		if r.Publisher == "Unknown" {
			found = true
		}
	}
	if !found {
		t.Error("filled publisher value not found")
	}
	if res.Report.MissingByCol["publisher"] != 1 || res.Report.MissingByCol["headline"] != 1 {
		t.Errorf("missing counts wrong: %v", res.Report.MissingByCol)
	}
}

func TestCleanOutlierFlagAndDrop(t *testing.T) {
	rows := []RawRecord{
		{Headline: "short one", URL: "u1", Publisher: "p", Date: "2020-01-02", Ticker: "X"},
		{Headline: "short two", URL: "u2", Publisher: "p", Date: "2020-01-03", Ticker: "X"},
		{Headline: "short thr", URL: "u3", Publisher: "p", Date: "2020-01-04", Ticker: "X"},
		{Headline: "short fou", URL: "u4", Publisher: "p", Date: "2020-01-05", Ticker: "X"},
		{Headline: strings.Repeat("an extremely long headline ", 40), URL: "u5", Publisher: "p", Date: "2020-01-06", Ticker: "X"},
	}

	flagged := Clean(rows, DefaultPolicy())
	if len(flagged.Records) != 5 {
		t.Fatalf("flag policy must keep all rows, got %d", len(flagged.Records))
	}
	if flagged.Report.Outliers["headline_length"].Count != 1 {
		t.Errorf("outlier count: got %d, want 1", flagged.Report.Outliers["headline_length"].Count)
	}
	if flagged.Report.Actions.FlaggedOutliers == 0 {
		t.Error("expected flagged outlier actions")
	}

	policy := DefaultPolicy()
	policy.Outliers = PolicyDrop
	dropped := Clean(rows, policy)
	if len(dropped.Records) != 4 {
		t.Fatalf("drop policy should remove the outlier row, got %d rows", len(dropped.Records))
	}
	if dropped.Report.Actions.DroppedOutliers != 1 {
		t.Errorf("dropped outliers: got %d, want 1", dropped.Report.Actions.DroppedOutliers)
	}
}

func TestCleanNeverErrors(t *testing.T) {
	// Thoroughly broken input still produces a result plus report.
	rows := []RawRecord{
		{}, {Date: "garbage"}, {Headline: "x"},
	}
	res := Clean(rows, DefaultPolicy())
	if res.Report.RowsIn != 3 {
		t.Errorf("rows in: got %d, want 3", res.Report.RowsIn)
	}
	if res.Report.RowsOut != len(res.Records) {
		t.Errorf("rows out (%d) disagrees with record count (%d)", res.Report.RowsOut, len(res.Records))
	}
}

func TestIQRBounds(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	lower, upper := IQRBounds(values)
	if lower >= upper {
		t.Fatalf("degenerate bounds [%f, %f]", lower, upper)
	}
	if 100 < upper {
		t.Errorf("100 should fall outside the upper fence %f", upper)
	}
	if 5 < lower || 5 > upper {
		t.Errorf("5 should be inside [%f, %f]", lower, upper)
	}
}
