package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
)

// FileFingerprint identifies a source file's exact content and metadata.
// The snapshot is a pure function of the source: when the fingerprint no
// longer matches, the snapshot is stale and the whole pipeline reruns.
// There is no partial or incremental update.
type FileFingerprint struct {
	SHA256  string    `json:"sha256"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Snapshot is the serialized form of the cleaned and featurized news table.
type Snapshot struct {
	Source      string              `json:"source"`
	Fingerprint FileFingerprint     `json:"fingerprint"`
	SavedAt     time.Time           `json:"saved_at"`
	Report      models.QualityReport `json:"report"`
	Records     []models.NewsRecord `json:"records"`
}

// Fingerprint computes the identity of the source file.
func Fingerprint(path string) (FileFingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileFingerprint{}, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return FileFingerprint{}, fmt.Errorf("stat %s: %w", path, err)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return FileFingerprint{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return FileFingerprint{
		SHA256:  hex.EncodeToString(h.Sum(nil)),
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}, nil
}

// SaveSnapshot persists the processed table to path, keyed by the source
// file's fingerprint. The write goes through a temp file and rename so a
// concurrent writer to the same path cannot leave an interleaved snapshot
// behind; last writer wins.
func SaveSnapshot(path, source string, report models.QualityReport, records []models.NewsRecord) error {
	fp, err := Fingerprint(source)
	if err != nil {
		return err
	}

	snap := Snapshot{
		Source:      source,
		Fingerprint: fp,
		SavedAt:     time.Now().UTC(),
		Report:      report,
		Records:     records,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a previously saved snapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Stale reports whether the snapshot no longer matches its source file.
// A missing or unreadable source counts as stale.
func (s *Snapshot) Stale() bool {
	fp, err := Fingerprint(s.Source)
	if err != nil {
		return true
	}
	return fp.SHA256 != s.Fingerprint.SHA256 || fp.Size != s.Fingerprint.Size
}
