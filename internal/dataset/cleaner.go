package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// Cleaning policies. The cleaner never fails on malformed content: every
// policy maps a finding to an action (or to no action), and every action is
// counted in the quality report.
const (
	PolicyReport = "report"
	PolicyDrop   = "drop"
	PolicyFill   = "fill"
	PolicyFlag   = "flag"
)

// FlagInvalidDate marks rows kept despite an unparseable timestamp.
const FlagInvalidDate = "invalid_date"

// fillDefault is the fill value for missing text columns.
const fillDefault = "Unknown"

// CleanPolicy selects how each class of data-quality finding is handled.
// Missing-value handling is chosen per column; columns absent from Missing
// fall back to MissingDefault. The date column is governed by Dates alone,
// so empty and unparseable timestamps follow one policy; a Missing entry
// for "date" has no effect.
type CleanPolicy struct {
	Duplicates     string            // PolicyDrop or PolicyReport
	MissingDefault string            // PolicyReport, PolicyDrop or PolicyFill
	Missing        map[string]string // column name -> policy
	Dates          string            // PolicyDrop or PolicyFlag
	Outliers       string            // PolicyFlag or PolicyDrop
}

// DefaultPolicy mirrors the exploratory workflow: drop exact duplicates and
// rows unusable downstream (no headline, no valid date), report the rest,
// flag outliers without removing them.
func DefaultPolicy() CleanPolicy {
	return CleanPolicy{
		Duplicates:     PolicyDrop,
		MissingDefault: PolicyReport,
		Missing: map[string]string{
			"headline": PolicyDrop,
		},
		Dates:    PolicyDrop,
		Outliers: PolicyFlag,
	}
}

func (p CleanPolicy) missingPolicy(column string) string {
	if pol, ok := p.Missing[column]; ok && pol != "" {
		return pol
	}
	if p.MissingDefault != "" {
		return p.MissingDefault
	}
	return PolicyReport
}

// CleanResult is the cleaned table plus the account of what happened to it.
type CleanResult struct {
	Records []models.NewsRecord
	Report  models.QualityReport
}

// Clean validates and repairs the raw rows according to the policy. It never
// returns an error: malformed content is a data-quality finding, not a
// failure, and every dropped, filled or flagged row is recorded in the
// report.
func Clean(rows []RawRecord, policy CleanPolicy) CleanResult {
	report := models.QualityReport{
		RowsIn:       len(rows),
		MissingByCol: DetectMissing(rows),
		Duplicates:   DetectDuplicates(rows),
	}

	// Duplicate removal uses the strict full-row notion only; headline and
	// URL duplication are reported but legitimate (syndicated stories, one
	// headline attributed to several tickers).
	work := rows
	if policy.Duplicates == PolicyDrop {
		var kept []RawRecord
		seen := make(map[RawRecord]bool, len(rows))
		for _, r := range rows {
			if seen[r] {
				report.Actions.DroppedDuplicates++
				continue
			}
			seen[r] = true
			kept = append(kept, r)
		}
		work = kept
	}

	// Missing values, per column policy. The date column is handled by the
	// date-validation step below so that empty and unparseable dates follow
	// one policy.
	var afterMissing []RawRecord
	for _, r := range work {
		drop := false
		for _, col := range []string{"headline", "url", "publisher", "stock"} {
			if columnValue(r, col) != "" {
				continue
			}
			switch policy.missingPolicy(col) {
			case PolicyDrop:
				drop = true
			case PolicyFill:
				setColumnValue(&r, col, fillDefault)
				report.Actions.FilledMissing++
			}
		}
		if drop {
			report.Actions.DroppedMissing++
			continue
		}
		afterMissing = append(afterMissing, r)
	}

	// Date validation. Unparseable timestamps are never silently kept: the
	// row is either dropped or flagged, and both paths are counted.
	var records []models.NewsRecord
	for _, r := range afterMissing {
		rec := models.NewsRecord{
			Headline:  r.Headline,
			URL:       r.URL,
			Publisher: r.Publisher,
			RawDate:   r.Date,
			Ticker:    r.Ticker,
		}
		t, err := utils.ParseNewsTime(r.Date)
		if err != nil {
			report.InvalidDates++
			if policy.Dates == PolicyFlag {
				rec.Flags = append(rec.Flags, FlagInvalidDate)
				report.Actions.FlaggedInvalidDates++
				records = append(records, rec)
			} else {
				report.Actions.DroppedInvalidDates++
			}
			continue
		}
		rec.PublishedAt = t
		records = append(records, rec)
	}

	// Outlier detection on the numeric headline metrics, IQR rule.
	records = applyOutlierPolicy(records, policy, &report)

	report.RowsOut = len(records)
	return CleanResult{Records: records, Report: report}
}

// DetectDuplicates counts the three duplicate notions independently: exact
// full-row equality, headline-text equality, and URL equality. A count is
// the number of rows beyond the first occurrence.
func DetectDuplicates(rows []RawRecord) models.DuplicateCounts {
	var c models.DuplicateCounts
	seenRow := make(map[RawRecord]bool, len(rows))
	seenHeadline := make(map[string]bool, len(rows))
	seenURL := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seenRow[r] {
			c.Rows++
		}
		seenRow[r] = true
		if seenHeadline[r.Headline] {
			c.Headlines++
		}
		seenHeadline[r.Headline] = true
		if seenURL[r.URL] {
			c.URLs++
		}
		seenURL[r.URL] = true
	}
	return c
}

// DetectMissing counts empty values per raw column.
func DetectMissing(rows []RawRecord) map[string]int {
	missing := make(map[string]int)
	for _, r := range rows {
		for _, col := range []string{"headline", "url", "publisher", "date", "stock"} {
			if columnValue(r, col) == "" {
				missing[col]++
			}
		}
	}
	for col, n := range missing {
		if n == 0 {
			delete(missing, col)
		}
	}
	return missing
}

// IQRBounds returns the [Q1 - 1.5*IQR, Q3 + 1.5*IQR] outlier fences for a
// numeric column. Quartiles use linear interpolation between order
// statistics.
func IQRBounds(values []float64) (lower, upper float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func applyOutlierPolicy(records []models.NewsRecord, policy CleanPolicy, report *models.QualityReport) []models.NewsRecord {
	if len(records) == 0 {
		return records
	}

	columns := map[string]func(models.NewsRecord) float64{
		"headline_length": func(r models.NewsRecord) float64 { return float64(len(r.Headline)) },
		"word_count":      func(r models.NewsRecord) float64 { return float64(utils.CountWords(r.Headline)) },
	}

	report.Outliers = make(map[string]models.OutlierSummary)
	dropRow := make([]bool, len(records))

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		extract := columns[name]
		values := make([]float64, len(records))
		for i, r := range records {
			values[i] = extract(r)
		}
		lower, upper := IQRBounds(values)

		summary := models.OutlierSummary{Lower: lower, Upper: upper}
		for i, v := range values {
			if v < lower || v > upper {
				summary.Count++
				switch policy.Outliers {
				case PolicyDrop:
					dropRow[i] = true
				default:
					records[i].Flags = append(records[i].Flags, "outlier:"+name)
					report.Actions.FlaggedOutliers++
				}
			}
		}
		if summary.Count > 0 {
			report.Outliers[name] = summary
		}
	}

	if policy.Outliers != PolicyDrop {
		return records
	}
	var kept []models.NewsRecord
	for i, r := range records {
		if dropRow[i] {
			report.Actions.DroppedOutliers++
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func columnValue(r RawRecord, col string) string {
	switch col {
	case "headline":
		return r.Headline
	case "url":
		return r.URL
	case "publisher":
		return r.Publisher
	case "date":
		return r.Date
	case "stock":
		return r.Ticker
	}
	return ""
}

func setColumnValue(r *RawRecord, col, v string) {
	switch col {
	case "headline":
		r.Headline = v
	case "url":
		r.URL = v
	case "publisher":
		r.Publisher = v
	case "date":
		r.Date = v
	case "stock":
		r.Ticker = v
	default:
		panic(fmt.Sprintf("unknown column %q", col))
	}
}
