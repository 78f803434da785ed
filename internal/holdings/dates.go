package holdings

import (
	"regexp"
	"strconv"
	"strings"
)

// Sentinel month and year for undated holdings; they sort after every real date.
const (
	UndatedMonth = 99
	UndatedYear  = 9999
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExtractMonthYear finds the first month-year reference in name.
// Patterns are tried in order and must capture the month abbreviation and the
// year as groups 1 and 2. Two-digit years are taken as 20xx. When nothing
// matches it returns (UndatedMonth, UndatedYear).
func ExtractMonthYear(name string, patterns []*regexp.Regexp) (month, year int) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(name)
		if len(m) < 3 {
			continue
		}

		var ok bool
		if month, ok = monthNumbers[strings.ToLower(m[1])]; !ok {
			month = UndatedMonth
		}

		var err error
		if year, err = strconv.Atoi(m[2]); err != nil {
			return month, UndatedYear
		}
		if len(m[2]) == 2 {
			year += 2000
		}
		return month, year
	}
	return UndatedMonth, UndatedYear
}
