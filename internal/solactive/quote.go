// Package solactive reads the current quote of the funds' underlying indices.
package solactive

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
)

// Target is an underlying index page and the file its quote is saved to.
type Target struct {
	Fund domain.FundCode
	URL  string
	File string
}

// Targets lists the indices tracked by each fund.
var Targets = []Target{
	{Fund: domain.FundBDRY, URL: "https://www.solactive.com/Indices/?index=DE000SLA4BY3", File: "solactive_bdry.csv"},
	{Fund: domain.FundBWET, URL: "https://www.solactive.com/Indices/?index=DE000SL0HLG3", File: "solactive_bwet.csv"},
}

// Quote is the snapshot shown in the page's current quotes panel.
// Fields not found on the page stay null.
type Quote struct {
	Fund      domain.FundCode
	UpdatedAt time.Time
	LastDate  string
	Last      decimal.NullDecimal
	DayLow    decimal.NullDecimal
	DayHigh   decimal.NullDecimal
	ChangeAbs decimal.NullDecimal
	ChangeRel decimal.NullDecimal
	YearLow   decimal.NullDecimal
	YearHigh  decimal.NullDecimal
}

var (
	lastQuotePattern = regexp.MustCompile(`Last quote\s*\(([^)]+)\):\s*([\d.,]+)`)
	dayRangePattern  = regexp.MustCompile(`Day range:\s*([\d.,]+)\s*/\s*([\d.,]+)`)
	changePattern    = regexp.MustCompile(`Change abs\./rel\.:\s*([-\d.,]+)\s*/\s*([-\d.,]+)%?`)
	yearRangePattern = regexp.MustCompile(`Year range:\s*([\d.,]+)\s*/\s*([\d.,]+)`)
)

// ParseQuote extracts the quote fields from rendered page HTML.
func ParseQuote(fund domain.FundCode, page string, now time.Time) Quote {
	q := Quote{Fund: fund, UpdatedAt: now}

	if m := lastQuotePattern.FindStringSubmatch(page); m != nil {
		q.LastDate = strings.TrimSpace(m[1])
		q.Last = number(m[2])
	}
	if m := dayRangePattern.FindStringSubmatch(page); m != nil {
		q.DayLow, q.DayHigh = number(m[1]), number(m[2])
	}
	if m := changePattern.FindStringSubmatch(page); m != nil {
		q.ChangeAbs, q.ChangeRel = number(m[1]), number(m[2])
	}
	if m := yearRangePattern.FindStringSubmatch(page); m != nil {
		q.YearLow, q.YearHigh = number(m[1]), number(m[2])
	}
	return q
}

// Found reports whether the page yielded a last quote.
func (q Quote) Found() bool {
	return q.Last.Valid
}

func number(s string) decimal.NullDecimal {
	d, err := domain.ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return d
}
