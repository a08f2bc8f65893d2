// Package models defines the core data structures used throughout finpulse.
package models

import "time"

// NewsRecord is one parsed headline row from the analyst-ratings dataset.
// Loader fills the raw columns; the cleaner validates them and the feature
// extractor populates the derived fields. A record is immutable once the
// pipeline has produced it; downstream stages derive new values instead of
// mutating rows in place.
type NewsRecord struct {
	Headline    string    `json:"headline"`
	URL         string    `json:"url"`
	Publisher   string    `json:"publisher"`
	RawDate     string    `json:"raw_date"`
	PublishedAt time.Time `json:"published_at"`
	Ticker      string    `json:"ticker"`

	// Derived features (see dataset.Featurize).
	HeadlineLength int    `json:"headline_length,omitempty"`
	WordCount      int    `json:"word_count,omitempty"`
	Year           int    `json:"year,omitempty"`
	Month          int    `json:"month,omitempty"`
	Day            int    `json:"day,omitempty"`
	Hour           int    `json:"hour,omitempty"`
	DayOfWeek      string `json:"day_of_week,omitempty"`
	EmailDomain    string `json:"email_domain,omitempty"`

	// Flags records quality findings the cleaner chose not to act on,
	// e.g. "invalid_date" or "outlier:headline_length". A row with a zero
	// PublishedAt is only valid if it carries the invalid_date flag.
	Flags []string `json:"flags,omitempty"`
}

// Date returns the calendar day (UTC midnight) of publication, which is the
// join key against daily price bars.
func (r NewsRecord) Date() time.Time {
	t := r.PublishedAt.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HasFlag reports whether the cleaner attached the given flag to this row.
func (r NewsRecord) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
