package models

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateCounts reports the three independent duplicate notions found in
// the raw table. Full-row duplication is the strictest: every full-row
// duplicate is also a headline duplicate, so Rows <= Headlines always holds.
type DuplicateCounts struct {
	Rows      int `json:"rows"`
	Headlines int `json:"headlines"`
	URLs      int `json:"urls"`
}

// OutlierSummary describes IQR-rule outliers found in one numeric column.
type OutlierSummary struct {
	Count int     `json:"count"`
	Lower float64 `json:"lower_bound"`
	Upper float64 `json:"upper_bound"`
}

// CleanActions counts every row the cleaner dropped, filled or flagged.
// Nothing is ever substituted or removed without being counted here.
type CleanActions struct {
	DroppedInvalidDates int `json:"dropped_invalid_dates"`
	FlaggedInvalidDates int `json:"flagged_invalid_dates"`
	DroppedDuplicates   int `json:"dropped_duplicates"`
	DroppedMissing      int `json:"dropped_missing"`
	FilledMissing       int `json:"filled_missing"`
	DroppedOutliers     int `json:"dropped_outliers"`
	FlaggedOutliers     int `json:"flagged_outliers"`
}

// QualityReport is the structured account of what the cleaner found and what
// it did about it. It is returned alongside the cleaned rows, never instead
// of them: data-quality findings are warnings, not failures.
type QualityReport struct {
	RowsIn       int                       `json:"rows_in"`
	RowsOut      int                       `json:"rows_out"`
	MissingByCol map[string]int            `json:"missing_by_column,omitempty"`
	Duplicates   DuplicateCounts           `json:"duplicates"`
	InvalidDates int                       `json:"invalid_dates"`
	Outliers     map[string]OutlierSummary `json:"outliers,omitempty"`
	Actions      CleanActions              `json:"actions"`
}

// Summary renders the report as an indented human-readable block for CLI
// output.
func (q QualityReport) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rows: %d in, %d out\n", q.RowsIn, q.RowsOut)
	fmt.Fprintf(&sb, "Duplicates: %d full-row, %d headline, %d url\n",
		q.Duplicates.Rows, q.Duplicates.Headlines, q.Duplicates.URLs)
	fmt.Fprintf(&sb, "Invalid dates: %d (%d dropped, %d flagged)\n",
		q.InvalidDates, q.Actions.DroppedInvalidDates, q.Actions.FlaggedInvalidDates)

	if len(q.MissingByCol) > 0 {
		cols := make([]string, 0, len(q.MissingByCol))
		for c := range q.MissingByCol {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		sb.WriteString("Missing values:\n")
		for _, c := range cols {
			fmt.Fprintf(&sb, "  %-16s %d\n", c+":", q.MissingByCol[c])
		}
	}

	if len(q.Outliers) > 0 {
		cols := make([]string, 0, len(q.Outliers))
		for c := range q.Outliers {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		sb.WriteString("Outliers (IQR rule):\n")
		for _, c := range cols {
			o := q.Outliers[c]
			fmt.Fprintf(&sb, "  %-16s %d outside [%.1f, %.1f]\n", c+":", o.Count, o.Lower, o.Upper)
		}
	}

	fmt.Fprintf(&sb, "Actions: %d dup dropped, %d missing dropped, %d missing filled, %d outliers dropped, %d outliers flagged\n",
		q.Actions.DroppedDuplicates, q.Actions.DroppedMissing, q.Actions.FilledMissing,
		q.Actions.DroppedOutliers, q.Actions.FlaggedOutliers)
	return sb.String()
}
