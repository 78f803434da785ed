// Package export publishes sorted holdings tables.
package export

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
	"github.com/mtlprog/freightstat/internal/holdings"
)

// TableWriter writes one fund's holdings to a destination.
type TableWriter interface {
	Write(ctx context.Context, fund domain.FundCode, table holdings.Table) error
}

// Records renders a table as a header row followed by one row per holding,
// restricted to the table's columns.
func Records(table holdings.Table) [][]string {
	records := make([][]string, 0, table.Len()+1)
	records = append(records, append([]string(nil), table.Columns...))
	for _, row := range table.Rows {
		records = append(records, lo.Map(table.Columns, func(col string, _ int) string {
			return cellValue(row, col)
		}))
	}
	return records
}

func cellValue(row domain.HoldingRow, column string) string {
	switch column {
	case holdings.ColumnName:
		return row.Name
	case holdings.ColumnTicker:
		return row.Ticker
	case holdings.ColumnCUSIP:
		return row.CUSIP
	case holdings.ColumnLots:
		return amountText(row, column, row.Quantity)
	case holdings.ColumnPrice:
		return amountText(row, column, row.Price)
	case holdings.ColumnMarketValue:
		return amountText(row, column, row.MarketValue)
	case holdings.ColumnWeightings:
		return amountText(row, column, row.Weighting)
	default:
		return ""
	}
}

// amountText prefers the cell text as received over the parsed amount.
func amountText(row domain.HoldingRow, column string, d decimal.NullDecimal) string {
	if text, ok := row.Text[column]; ok {
		return text
	}
	return domain.FormatAmount(d)
}
