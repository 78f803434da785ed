package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/holdings"
)

const defaultSheet = "Sheet1"

// XLSXWriter keeps one worksheet per fund in a single workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer for the workbook at path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write replaces the fund's worksheet, creating the workbook if needed.
func (w *XLSXWriter) Write(_ context.Context, fund domain.FundCode, table holdings.Table) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := string(fund)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := clearSheet(f, sheet); err != nil {
		return err
	}

	for r, rec := range Records(table) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]any, len(rec))
		for i, v := range rec {
			values[i] = xlsxValue(r, table.Columns[i], v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, r+1, err)
		}
	}

	if other, _ := f.GetSheetIndex(defaultSheet); other != -1 && len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
		idx, _ = f.GetSheetIndex(sheet)
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving %s: %w", w.path, err)
	}
	return nil
}

// clearSheet removes every row left over from a previous run.
func clearSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	for range rows {
		if err := f.RemoveRow(sheet, 1); err != nil {
			return fmt.Errorf("clearing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func (w *XLSXWriter) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	if _, statErr := os.Stat(w.path); errors.Is(statErr, fs.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return nil, fmt.Errorf("opening %s: %w", w.path, err)
}

// xlsxValue stores numeric columns as numbers so the workbook can sum them.
func xlsxValue(row int, column, v string) any {
	if row == 0 || v == "" {
		return v
	}
	switch column {
	case holdings.ColumnLots, holdings.ColumnPrice, holdings.ColumnMarketValue, holdings.ColumnWeightings:
		d, err := domain.ParseAmount(v)
		if err != nil || !d.Valid {
			return v
		}
		f, _ := d.Decimal.Float64()
		return f
	default:
		return v
	}
}
