package dataset

import (
	"github.com/seenimoa/finpulse/pkg/models"
)

// Preprocess runs the full load -> clean -> featurize chain over the news
// CSV at path. Loader failures (I/O, schema) surface as errors; everything
// the cleaner finds is recoverable and lands in the report.
func Preprocess(path string, opts LoadOptions, policy CleanPolicy) ([]models.NewsRecord, models.QualityReport, error) {
	rows, err := LoadCSV(path, opts)
	if err != nil {
		return nil, models.QualityReport{}, err
	}
	result := Clean(rows, policy)
	records := Featurize(result.Records)
	return records, result.Report, nil
}

// LoadOrPreprocess returns the processed table from the snapshot when it
// exists and still matches the source file, and reruns the pipeline (and
// refreshes the snapshot) otherwise.
func LoadOrPreprocess(snapshotPath, csvPath string, opts LoadOptions, policy CleanPolicy) ([]models.NewsRecord, models.QualityReport, error) {
	if snap, err := LoadSnapshot(snapshotPath); err == nil && snap.Source == csvPath && !snap.Stale() {
		return snap.Records, snap.Report, nil
	}

	records, report, err := Preprocess(csvPath, opts, policy)
	if err != nil {
		return nil, models.QualityReport{}, err
	}
	if snapshotPath != "" {
		if err := SaveSnapshot(snapshotPath, csvPath, report, records); err != nil {
			return nil, models.QualityReport{}, err
		}
	}
	return records, report, nil
}
