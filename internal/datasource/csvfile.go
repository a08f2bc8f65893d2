package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/seenimoa/finpulse/pkg/models"
	"github.com/seenimoa/finpulse/pkg/utils"
)

// CSVFiles implements BarProvider over a directory of per-ticker CSV files
// (<dir>/<TICKER>.csv) in the common vendor export layout:
// Date,Open,High,Low,Close,Adj Close,Volume. This is the offline path for
// reproducible runs without network access.
type CSVFiles struct {
	Dir string
}

// NewCSVFiles creates a provider reading bars from dir.
func NewCSVFiles(dir string) *CSVFiles {
	return &CSVFiles{Dir: dir}
}

// Name returns the provider name.
func (c *CSVFiles) Name() string { return "Local CSV" }

// GetDailyBars reads the ticker's file and returns the bars inside
// [from, to], ascending by date.
func (c *CSVFiles) GetDailyBars(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error) {
	symbol := utils.NormalizeTicker(ticker)
	path := filepath.Join(c.Dir, symbol+".csv")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (no file %s)", ErrTickerNotFound, symbol, path)
		}
		return nil, fmt.Errorf("open bar file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	idx := barHeaderIndex(header)
	if _, ok := idx["date"]; !ok {
		return nil, fmt.Errorf("%s: missing date column", path)
	}
	if _, ok := idx["close"]; !ok {
		return nil, fmt.Errorf("%s: missing close column", path)
	}

	var bars []models.PriceBar
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		date, err := time.Parse("2006-01-02", barField(row, idx, "date"))
		if err != nil {
			// Vendor files occasionally carry a trailing junk row; skip it.
			continue
		}
		date = utils.DateOnly(date)
		if date.Before(utils.DateOnly(from)) || date.After(utils.DateOnly(to)) {
			continue
		}

		bar := models.PriceBar{
			Date:     date,
			Open:     barFloat(row, idx, "open"),
			High:     barFloat(row, idx, "high"),
			Low:      barFloat(row, idx, "low"),
			Close:    barFloat(row, idx, "close"),
			AdjClose: barFloat(row, idx, "adj close"),
		}
		if v := barField(row, idx, "volume"); v != "" {
			if vol, err := strconv.ParseInt(v, 10, 64); err == nil {
				bar.Volume = vol
			}
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBars, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func barHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func barField(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func barFloat(row []string, idx map[string]int, col string) float64 {
	v, err := strconv.ParseFloat(barField(row, idx, col), 64)
	if err != nil {
		return 0
	}
	return v
}
