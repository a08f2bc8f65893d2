package dataset

import (
	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// Featurize derives the temporal and textual feature columns for every
// record: date parts, headline length in characters and words, and the
// publisher's email domain when the publisher string is an email address.
// It is a pure function: the input slice is not modified, and identical
// input always produces identical output.
func Featurize(records []models.NewsRecord) []models.NewsRecord {
	out := make([]models.NewsRecord, len(records))
	for i, r := range records {
		r.HeadlineLength = len(r.Headline)
		r.WordCount = utils.CountWords(r.Headline)
		r.EmailDomain = utils.ExtractEmailDomain(r.Publisher)

		// Date parts stay zero for rows flagged with an invalid date.
		if !r.PublishedAt.IsZero() {
			t := r.PublishedAt.UTC()
			r.Year = t.Year()
			r.Month = int(t.Month())
			r.Day = t.Day()
			r.Hour = t.Hour()
			r.DayOfWeek = t.Weekday().String()
		}
		out[i] = r
	}
	return out
}
