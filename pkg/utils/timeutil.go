// Package utils provides small date and text helpers shared across finpulse.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// newsTimeLayouts are the timestamp formats observed in the analyst-ratings
// dataset and in vendor exports. Offset-bearing layouts come first so that
// timezone information is preserved when present; naive layouts are assumed
// to be UTC.
var newsTimeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseNewsTime parses a publication timestamp from the news dataset.
// The result is always normalized to UTC so that naive and offset-bearing
// inputs derive the same calendar date downstream.
func ParseNewsTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range newsTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// DateOnly truncates a timestamp to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the ISO form used in all CLI and report output.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
