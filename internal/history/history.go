// Package history maintains the per-index historical CSV files.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
)

// CSV layout of a history file.
const (
	ColumnDate   = "Date"
	ColumnIndex  = "Index"
	ColumnChange = "% Change"

	DateLayout = "02-01-2006"
)

// Load reads a history file. A missing, empty or header-only file yields no
// points and no error.
func Load(path string) ([]domain.IndexPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	body := strings.TrimSpace(string(data))
	if !strings.Contains(body, "\n") {
		return nil, nil
	}

	df := dataframe.ReadCSV(strings.NewReader(body),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, df.Err)
	}
	for _, c := range []string{ColumnDate, ColumnIndex} {
		if !lo.Contains(df.Names(), c) {
			return nil, fmt.Errorf("%s: missing column %q", path, c)
		}
	}

	dates := df.Col(ColumnDate).Records()
	values := df.Col(ColumnIndex).Records()
	changes := make([]string, len(dates))
	if lo.Contains(df.Names(), ColumnChange) {
		changes = df.Col(ColumnChange).Records()
	}

	points := make([]domain.IndexPoint, 0, len(dates))
	for i := range dates {
		date, err := time.Parse(DateLayout, strings.TrimSpace(dates[i]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid date %q", path, i, dates[i])
		}
		value, err := decimal.NewFromString(strings.TrimSpace(values[i]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid index %q", path, i, values[i])
		}
		points = append(points, domain.IndexPoint{Date: date, Value: value, Change: changes[i]})
	}
	return points, nil
}

// Merge combines stored and freshly scraped points. Points are keyed by
// calendar date; a fresh point replaces a stored one for the same day.
// The result is ordered by date, oldest first.
func Merge(existing, fresh []domain.IndexPoint) []domain.IndexPoint {
	byDay := make(map[string]domain.IndexPoint, len(existing)+len(fresh))
	for _, p := range slices.Concat(existing, fresh) {
		byDay[p.Date.Format(time.DateOnly)] = p
	}

	merged := lo.Values(byDay)
	slices.SortFunc(merged, func(a, b domain.IndexPoint) int {
		return a.Date.Compare(b.Date)
	})
	return merged
}

// Save writes points to path, replacing any existing file.
func Save(path string, points []domain.IndexPoint) error {
	df := dataframe.New(
		series.New(lo.Map(points, func(p domain.IndexPoint, _ int) string {
			return p.Date.Format(DateLayout)
		}), series.String, ColumnDate),
		series.New(lo.Map(points, func(p domain.IndexPoint, _ int) string {
			return p.Value.String()
		}), series.String, ColumnIndex),
		series.New(lo.Map(points, func(p domain.IndexPoint, _ int) string {
			return p.Change
		}), series.String, ColumnChange),
	)
	if df.Err != nil {
		return fmt.Errorf("building %s: %w", path, df.Err)
	}

	// Write beside the target and rename, so an interrupted run never
	// leaves a truncated history behind.
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
