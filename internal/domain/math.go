package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// ParseAmount parses a numeric feed cell such as "$1,234.50" or "12.5%".
// Blank cells yield an invalid NullDecimal and no error.
func ParseAmount(value string) (decimal.NullDecimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(value))
	if cleaned == "" || cleaned == "NaN" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q", value)
	}
	return decimal.NewNullDecimal(d), nil
}

// FormatAmount renders a nullable amount, using the empty string for null.
func FormatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Percent returns part/total*100 rounded to two places, or zero when total is not positive.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}
