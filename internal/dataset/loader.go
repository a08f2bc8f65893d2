// Package dataset implements the news-table pipeline: loading the raw CSV,
// quality checks and cleaning, feature extraction, and the processed-table
// snapshot cache.
//
// The raw table carries one ticker per row (the "stock" column); a headline
// that mentions several tickers appears as several rows upstream, and each
// row is attributed to its own designated ticker only.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Required columns of the raw news CSV. Extra columns are ignored.
var requiredColumns = []string{"headline", "url", "publisher", "date", "stock"}

// RawRecord is one unvalidated row as read from the CSV. All fields are raw
// strings; validation and typing happen in the cleaner.
type RawRecord struct {
	Headline  string
	URL       string
	Publisher string
	Date      string
	Ticker    string
}

// SchemaError reports a CSV whose header is missing required columns.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// LoadOptions controls CSV loading.
type LoadOptions struct {
	// SampleSize limits the number of data rows read; 0 reads the full file.
	SampleSize int
}

// LoadCSV reads the news CSV into raw records. Header matching is
// case-insensitive. An unreadable file surfaces as a wrapped I/O error and
// a header without the required columns as *SchemaError.
func LoadCSV(path string, opts LoadOptions) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open news csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; short rows become missing values

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	idx, missing := mapHeader(header)
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	var records []RawRecord
	for {
		if opts.SampleSize > 0 && len(records) >= opts.SampleSize {
			break
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, RawRecord{
			Headline:  field(row, idx["headline"]),
			URL:       field(row, idx["url"]),
			Publisher: field(row, idx["publisher"]),
			Date:      field(row, idx["date"]),
			Ticker:    strings.ToUpper(field(row, idx["stock"])),
		})
	}

	return records, nil
}

// mapHeader resolves required column positions, case-insensitively.
func mapHeader(header []string) (map[string]int, []string) {
	idx := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return idx, missing
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
