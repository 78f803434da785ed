package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/holdings"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleTable() holdings.Table {
	return holdings.Table{
		Columns: []string{holdings.ColumnName, holdings.ColumnTicker, holdings.ColumnMarketValue, holdings.ColumnWeightings},
		Rows: []domain.HoldingRow{
			{Name: "Capesize Jun 26", Ticker: "CPJ6", MarketValue: amount("1200.5"), Weighting: amount("60.02")},
			{Name: "Cash", MarketValue: amount("799.5")},
		},
	}
}

func TestRecords(t *testing.T) {
	got := Records(sampleTable())
	want := [][]string{
		{"Name", "Ticker", "Market_Value", "Weightings"},
		{"Capesize Jun 26", "CPJ6", "1200.5", "60.02"},
		{"Cash", "", "799.5", ""},
	}

	if len(got) != len(want) {
		t.Fatalf("len(Records) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if strings.Join(got[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("Records[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRecordsEmptyTable(t *testing.T) {
	got := Records(holdings.Table{Columns: []string{holdings.ColumnName}})
	if len(got) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(got))
	}
	if got[0][0] != "Name" {
		t.Errorf("header = %v, want [Name]", got[0])
	}
}

func TestCSVWriterPath(t *testing.T) {
	w := NewCSVWriter("/out")

	if got := w.Path(domain.FundBDRY); got != filepath.Join("/out", "bdry_holdings.csv") {
		t.Errorf("Path(BDRY) = %q", got)
	}
	if got := w.Path(domain.FundBWET); got != filepath.Join("/out", "bwet_holdings.csv") {
		t.Errorf("Path(BWET) = %q", got)
	}
}

func TestCSVWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w := NewCSVWriter(dir)

	if err := w.Write(context.Background(), domain.FundBDRY, sampleTable()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(w.Path(domain.FundBDRY))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), data)
	}
	if lines[0] != "Name,Ticker,Market_Value,Weightings" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Capesize Jun 26,CPJ6,1200.5,60.02" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Cash,") {
		t.Errorf("row 2 = %q, want Cash first", lines[2])
	}
}

func TestXLSXWriterOneSheetPerFund(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.xlsx")
	w := NewXLSXWriter(path)
	ctx := context.Background()

	if err := w.Write(ctx, domain.FundBDRY, sampleTable()); err != nil {
		t.Fatalf("Write(BDRY) error: %v", err)
	}
	bwet := holdings.Table{
		Columns: []string{holdings.ColumnName, holdings.ColumnMarketValue},
		Rows:    []domain.HoldingRow{{Name: "TD3C Jan 26", MarketValue: amount("10")}},
	}
	if err := w.Write(ctx, domain.FundBWET, bwet); err != nil {
		t.Fatalf("Write(BWET) error: %v", err)
	}
	// Rewriting a fund replaces its sheet.
	if err := w.Write(ctx, domain.FundBDRY, sampleTable()); err != nil {
		t.Fatalf("second Write(BDRY) error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v, want BDRY and BWET", sheets)
	}
	for _, name := range []string{"BDRY", "BWET"} {
		if idx, _ := f.GetSheetIndex(name); idx == -1 {
			t.Errorf("sheet %s missing", name)
		}
	}

	rows, err := f.GetRows("BDRY")
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("BDRY rows = %d, want 3", len(rows))
	}
	if rows[1][0] != "Capesize Jun 26" {
		t.Errorf("BDRY A2 = %q, want Capesize Jun 26", rows[1][0])
	}
	if rows[1][2] != "1200.5" {
		t.Errorf("BDRY C2 = %q, want 1200.5", rows[1][2])
	}
}

func TestXLSXValue(t *testing.T) {
	if got := xlsxValue(0, holdings.ColumnMarketValue, "Market_Value"); got != "Market_Value" {
		t.Errorf("header cell = %v, want string", got)
	}
	if got := xlsxValue(1, holdings.ColumnMarketValue, "12.5"); got != 12.5 {
		t.Errorf("numeric cell = %v, want 12.5", got)
	}
	if got := xlsxValue(1, holdings.ColumnName, "12.5"); got != "12.5" {
		t.Errorf("name cell = %v, want string", got)
	}
	if got := xlsxValue(1, holdings.ColumnPrice, ""); got != "" {
		t.Errorf("empty cell = %v, want empty", got)
	}
}

func TestSheetValues(t *testing.T) {
	values := sheetValues(sampleTable())
	if len(values) != 3 {
		t.Fatalf("len(values) = %d, want 3", len(values))
	}
	if values[2][0] != "Cash" {
		t.Errorf("values[2][0] = %v, want Cash", values[2][0])
	}
}

func TestXLSXWriterRewriteShrinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.xlsx")
	w := NewXLSXWriter(path)
	ctx := context.Background()

	if err := w.Write(ctx, domain.FundBDRY, sampleTable()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	small := holdings.Table{
		Columns: []string{holdings.ColumnName},
		Rows:    []domain.HoldingRow{{Name: "Cash", MarketValue: amount("1")}},
	}
	if err := w.Write(ctx, domain.FundBDRY, small); err != nil {
		t.Fatalf("second Write() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != "BDRY" {
		t.Errorf("sheets = %v, want [BDRY]", got)
	}
	rows, err := f.GetRows("BDRY")
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v, want header and one row", rows)
	}
	if len(rows[0]) != 1 || rows[1][0] != "Cash" {
		t.Errorf("rows = %v, want [[Name] [Cash]]", rows)
	}
}
