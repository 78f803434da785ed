package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/holdings"
)

// CSVWriter writes each fund to its own CSV file in a directory.
type CSVWriter struct {
	dir   string
	files map[domain.FundCode]string
}

// NewCSVWriter creates a CSVWriter using the file names of domain.FundTargets.
func NewCSVWriter(dir string) *CSVWriter {
	files := lo.SliceToMap(domain.FundTargets, func(t domain.FundTarget) (domain.FundCode, string) {
		return t.Code, t.File
	})
	return &CSVWriter{dir: dir, files: files}
}

// Path returns the output file of a fund.
func (w *CSVWriter) Path(fund domain.FundCode) string {
	name, ok := w.files[fund]
	if !ok {
		name = fmt.Sprintf("%s_holdings.csv", fund)
	}
	return filepath.Join(w.dir, name)
}

func (w *CSVWriter) Write(_ context.Context, fund domain.FundCode, table holdings.Table) error {
	records := Records(table)
	cols := make([]series.Series, len(table.Columns))
	for i, name := range table.Columns {
		values := lo.Map(records[1:], func(rec []string, _ int) string { return rec[i] })
		cols[i] = series.New(values, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return fmt.Errorf("building %s table: %w", fund, df.Err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := w.Path(fund)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
