package holdings

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
)

// row builds a holding whose Ticker carries its original position, so tests can
// track identity through a sort without relying on names.
func row(name string, value int64, pos int) domain.HoldingRow {
	return domain.HoldingRow{
		Name:        name,
		Ticker:      strconv.Itoa(pos),
		MarketValue: decimal.NewNullDecimal(decimal.NewFromInt(value)),
	}
}

func names(rows []domain.HoldingRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func tickers(rows []domain.HoldingRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}

func bdry() Ruleset {
	return DefaultRulesets()[domain.FundBDRY]
}

func bwet() Ruleset {
	return DefaultRulesets()[domain.FundBWET]
}
