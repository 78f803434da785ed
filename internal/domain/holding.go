package domain

import "github.com/shopspring/decimal"

// HoldingRow is one line of an ETF holdings table.
// Numeric cells are nullable because the issuer feed leaves them blank for some positions.
type HoldingRow struct {
	Name        string
	Ticker      string
	CUSIP       string
	Quantity    decimal.NullDecimal
	Price       decimal.NullDecimal
	MarketValue decimal.NullDecimal
	Weighting   decimal.NullDecimal

	// Text holds the published text of numeric cells, keyed by column name,
	// so they can be written back exactly as received.
	Text map[string]string
}
