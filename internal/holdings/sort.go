package holdings

import (
	"cmp"
	"slices"

	"github.com/mtlprog/freightstat/internal/domain"
)

// Output column names, in publication order.
const (
	ColumnName        = "Name"
	ColumnTicker      = "Ticker"
	ColumnCUSIP       = "CUSIP"
	ColumnLots        = "Lots"
	ColumnPrice       = "Price"
	ColumnMarketValue = "Market_Value"
	ColumnWeightings  = "Weightings"
)

// Columns is the full set of holding columns in publication order.
var Columns = []string{
	ColumnName, ColumnTicker, ColumnCUSIP, ColumnLots,
	ColumnPrice, ColumnMarketValue, ColumnWeightings,
}

// Table is a fund's holdings together with the columns present in its source.
type Table struct {
	Columns []string
	Rows    []domain.HoldingRow
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// SortKey orders holdings by category, then contract year, then month.
type SortKey struct {
	Priority int
	Year     int
	Month    int
}

// Compare returns -1, 0 or +1 comparing k with other field by field.
func (k SortKey) Compare(other SortKey) int {
	return cmp.Or(
		cmp.Compare(k.Priority, other.Priority),
		cmp.Compare(k.Year, other.Year),
		cmp.Compare(k.Month, other.Month),
	)
}

// KeyOf computes the sort key of a single holding.
func KeyOf(row domain.HoldingRow, rs Ruleset) SortKey {
	month, year := ExtractMonthYear(row.Name, rs.DatePatterns)
	return SortKey{
		Priority: Categorize(row.Name, rs).Priority,
		Year:     year,
		Month:    month,
	}
}

// Validate checks that every row carries a market value.
func Validate(rows []domain.HoldingRow) error {
	for i, row := range rows {
		if !row.MarketValue.Valid {
			return &RowError{Row: i, Name: row.Name, Field: ColumnMarketValue, Err: ErrMissingValue}
		}
	}
	return nil
}

// Sort returns a new table with the rows of t ordered by SortKey.
// Rows with equal keys keep their original relative order. The input table is
// left untouched and the column set is carried over unchanged.
func Sort(t Table, rs Ruleset) (Table, error) {
	if err := Validate(t.Rows); err != nil {
		return Table{}, err
	}

	type keyed struct {
		key SortKey
		row domain.HoldingRow
	}
	items := make([]keyed, len(t.Rows))
	for i, row := range t.Rows {
		items[i] = keyed{key: KeyOf(row, rs), row: row}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return a.key.Compare(b.key)
	})

	rows := make([]domain.HoldingRow, len(items))
	for i, it := range items {
		rows[i] = it.row
	}
	return Table{Columns: slices.Clone(t.Columns), Rows: rows}, nil
}
