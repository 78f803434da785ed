package amplify

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/holdings"
)

// ErrFundNotFound indicates the feed has no rows for the requested fund.
var ErrFundNotFound = errors.New("no holdings found for fund")

const accountColumn = "Account"

// columnRenames maps feed column names to published holding columns.
var columnRenames = []struct{ from, to string }{
	{"SecurityName", holdings.ColumnName},
	{"StockTicker", holdings.ColumnTicker},
	{"CUSIP", holdings.ColumnCUSIP},
	{"Shares", holdings.ColumnLots},
	{"Price", holdings.ColumnPrice},
	{"MarketValue", holdings.ColumnMarketValue},
	{"Weightings", holdings.ColumnWeightings},
}

// Feed is the decoded master holdings CSV covering every Amplify fund.
type Feed struct {
	df dataframe.DataFrame
}

// ParseFeed decodes the master CSV. Every cell is kept as text.
func ParseFeed(r io.Reader) (*Feed, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parsing holdings feed: %w", df.Err)
	}
	if !lo.Contains(df.Names(), accountColumn) {
		return nil, fmt.Errorf("holdings feed has no %q column", accountColumn)
	}
	return &Feed{df: df}, nil
}

// Len returns the number of holdings across all funds.
func (f *Feed) Len() int {
	return f.df.Nrow()
}

// Holdings extracts the rows of one fund, renamed to the published column set.
// Only columns present in the feed are kept. A blank or unparsable market
// value is reported as a *holdings.RowError.
func (f *Feed) Holdings(fund domain.FundCode) (holdings.Table, error) {
	sub := f.df.Filter(dataframe.F{
		Colname:    accountColumn,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return strings.EqualFold(strings.TrimSpace(el.String()), string(fund))
		},
	})
	if sub.Err != nil {
		return holdings.Table{}, fmt.Errorf("filtering %s: %w", fund, sub.Err)
	}
	if sub.Nrow() == 0 {
		return holdings.Table{}, fmt.Errorf("%s: %w", fund, ErrFundNotFound)
	}

	for _, rn := range columnRenames {
		if lo.Contains(sub.Names(), rn.from) {
			sub = sub.Rename(rn.to, rn.from)
		}
	}

	columns := lo.Filter(holdings.Columns, func(c string, _ int) bool {
		return lo.Contains(sub.Names(), c)
	})
	for _, required := range []string{holdings.ColumnName, holdings.ColumnMarketValue} {
		if !lo.Contains(columns, required) {
			return holdings.Table{}, fmt.Errorf("%s: feed is missing column %q", fund, required)
		}
	}

	sub = sub.Select(columns)
	if sub.Err != nil {
		return holdings.Table{}, fmt.Errorf("selecting %s columns: %w", fund, sub.Err)
	}

	rows, err := decodeRows(sub.Records())
	if err != nil {
		return holdings.Table{}, fmt.Errorf("%s: %w", fund, err)
	}
	return holdings.Table{Columns: columns, Rows: rows}, nil
}

// decodeRows converts header-first string records into holding rows.
func decodeRows(records [][]string) ([]domain.HoldingRow, error) {
	if len(records) == 0 {
		return nil, nil
	}
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	raw := func(rec []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}
	cell := func(rec []string, name string) string {
		v, _ := raw(rec, name)
		return strings.TrimSpace(v)
	}

	rows := make([]domain.HoldingRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		row := domain.HoldingRow{
			Name:   cell(rec, holdings.ColumnName),
			Ticker: cell(rec, holdings.ColumnTicker),
			CUSIP:  cell(rec, holdings.ColumnCUSIP),
			Text:   make(map[string]string, 4),
		}

		amounts := []struct {
			column string
			dest   *decimal.NullDecimal
		}{
			{holdings.ColumnLots, &row.Quantity},
			{holdings.ColumnPrice, &row.Price},
			{holdings.ColumnMarketValue, &row.MarketValue},
			{holdings.ColumnWeightings, &row.Weighting},
		}
		for _, a := range amounts {
			v, err := domain.ParseAmount(cell(rec, a.column))
			if err != nil {
				return nil, &holdings.RowError{Row: n, Name: row.Name, Field: a.column, Err: err}
			}
			*a.dest = v
			if text, ok := raw(rec, a.column); ok {
				row.Text[a.column] = text
			}
		}

		if !row.MarketValue.Valid {
			return nil, &holdings.RowError{Row: n, Name: row.Name, Field: holdings.ColumnMarketValue, Err: holdings.ErrMissingValue}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
