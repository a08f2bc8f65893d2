package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.csv")
	if err := os.WriteFile(source, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	records := []models.NewsRecord{
		{
			Headline:       "Shares surge after record earnings beat",
			URL:            "https://example.com/2",
			Publisher:      "john.doe@reuters.com",
			RawDate:        "2020-06-05 11:00:00-04:00",
			PublishedAt:    time.Date(2020, 6, 5, 15, 0, 0, 0, time.UTC),
			Ticker:         "A",
			HeadlineLength: 39,
			WordCount:      6,
			EmailDomain:    "reuters.com",
			Year:           2020,
			Month:          6,
			Day:            5,
			Hour:           15,
			DayOfWeek:      "Friday",
		},
		{
			Headline: "flagged row",
			Ticker:   "B",
			Flags:    []string{FlagInvalidDate},
		},
	}
	report := models.QualityReport{RowsIn: 3, RowsOut: 2, InvalidDates: 1}

	snapPath := filepath.Join(dir, "snap.json")
	if err := SaveSnapshot(snapPath, source, report, records); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	snap, err := LoadSnapshot(snapPath)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(snap.Records, records) {
		t.Errorf("records changed across round trip:\ngot  %+v\nwant %+v", snap.Records, records)
	}
	if snap.Report.RowsIn != 3 || snap.Report.InvalidDates != 1 {
		t.Errorf("report changed across round trip: %+v", snap.Report)
	}
	if snap.Source != source {
		t.Errorf("source path: got %q, want %q", snap.Source, source)
	}
	if snap.Stale() {
		t.Error("fresh snapshot reported stale")
	}
}

func TestSnapshotStaleAfterSourceChange(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.csv")
	if err := os.WriteFile(source, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	snapPath := filepath.Join(dir, "snap.json")
	if err := SaveSnapshot(snapPath, source, models.QualityReport{}, nil); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(source, []byte(sampleCSV+"extra,u,p,2020-01-01,Z\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadSnapshot(snapPath)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Stale() {
		t.Error("snapshot should be stale after source content changed")
	}
}

func TestSnapshotStaleWhenSourceMissing(t *testing.T) {
	snap := &Snapshot{Source: filepath.Join(t.TempDir(), "gone.csv")}
	if !snap.Stale() {
		t.Error("missing source must count as stale")
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.csv")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	fp, err := Fingerprint(path)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp.Size != 5 {
		t.Errorf("size: got %d, want 5", fp.Size)
	}
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if fp.SHA256 != want {
		t.Errorf("sha256: got %s", fp.SHA256)
	}
}
