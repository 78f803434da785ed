package holdings

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
)

// CategorySummary aggregates the market value of one category.
type CategorySummary struct {
	Category Category
	Value    decimal.Decimal
	Percent  decimal.Decimal
	Count    int
}

// Summarize totals market value per category, in priority order.
// Categories without holdings are omitted.
func Summarize(rows []domain.HoldingRow, rs Ruleset) ([]CategorySummary, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}

	total := lo.Reduce(rows, func(acc decimal.Decimal, r domain.HoldingRow, _ int) decimal.Decimal {
		return acc.Add(r.MarketValue.Decimal)
	}, decimal.Zero)

	byLabel := lo.GroupBy(rows, func(r domain.HoldingRow) string {
		return Categorize(r.Name, rs).Label
	})

	summaries := make([]CategorySummary, 0, len(byLabel))
	for _, cat := range rs.Categories() {
		group, ok := byLabel[cat.Label]
		if !ok {
			continue
		}
		value := lo.Reduce(group, func(acc decimal.Decimal, r domain.HoldingRow, _ int) decimal.Decimal {
			return acc.Add(r.MarketValue.Decimal)
		}, decimal.Zero)
		summaries = append(summaries, CategorySummary{
			Category: cat,
			Value:    value,
			Percent:  domain.Percent(value, total),
			Count:    len(group),
		})
	}
	return summaries, nil
}
