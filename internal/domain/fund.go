package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FundCode identifies an ETF whose holdings are processed.
type FundCode string

const (
	// FundBDRY is the dry-bulk freight futures fund, categorized by vessel size class.
	FundBDRY FundCode = "BDRY"
	// FundBWET is the tanker freight futures fund, categorized by route.
	FundBWET FundCode = "BWET"
)

// FundTarget pairs a fund with the CSV file its sorted holdings are written to.
type FundTarget struct {
	Code FundCode
	File string
}

// FundTargets lists the funds extracted from the issuer feed, in processing order.
var FundTargets = []FundTarget{
	{Code: FundBDRY, File: "bdry_holdings.csv"},
	{Code: FundBWET, File: "bwet_holdings.csv"},
}

// ParseFundCode parses a fund ticker case-insensitively.
func ParseFundCode(s string) (FundCode, error) {
	code := FundCode(strings.ToUpper(strings.TrimSpace(s)))
	if !lo.ContainsBy(FundTargets, func(t FundTarget) bool { return t.Code == code }) {
		return "", fmt.Errorf("unknown fund code: %q", s)
	}
	return code, nil
}
