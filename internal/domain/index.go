package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndexCode identifies a Baltic Exchange freight index.
type IndexCode string

const (
	IndexBDTI IndexCode = "BDTI"
	IndexBCTI IndexCode = "BCTI"
	IndexBCI  IndexCode = "BCI"
	IndexBPI  IndexCode = "BPI"
	IndexBSI  IndexCode = "BSI"
	IndexBDI  IndexCode = "BDI"
)

// IndexTarget pairs an index with the historical CSV file it is merged into.
type IndexTarget struct {
	Code IndexCode
	File string
}

// IndexTargets lists the scraped indices in processing order.
var IndexTargets = []IndexTarget{
	{Code: IndexBDTI, File: "dirtytanker_historical.csv"},
	{Code: IndexBCTI, File: "cleantanker_historical.csv"},
	{Code: IndexBCI, File: "cape_historical.csv"},
	{Code: IndexBPI, File: "panama_historical.csv"},
	{Code: IndexBSI, File: "suprama_historical.csv"},
	{Code: IndexBDI, File: "bdiy_historical.csv"},
}

// IndexPoint is a single daily index observation.
// Change is kept verbatim as published (e.g. "+1.25%").
type IndexPoint struct {
	Date   time.Time
	Value  decimal.Decimal
	Change string
}
