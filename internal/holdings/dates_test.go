package holdings

import (
	"regexp"
	"testing"
)

func TestExtractMonthYear(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMonth int
		wantYear  int
	}{
		{"two digit year", "Capesize Mar 26", 3, 2026},
		{"four digit year", "Panamax Feb 2027", 2, 2027},
		{"contract prefix", "M Mar 2026", 3, 2026},
		{"hyphen", "Supramax Dec-26", 12, 2026},
		{"no-break space", "Capesize Mar\u00a026", 3, 2026},
		{"thin space", "Panamax Feb\u20092027", 2, 2027},
		{"no separator", "TD3C JAN27", 1, 2027},
		{"full month name", "Capesize September 2026", 9, 2026},
		{"first match wins", "Capesize Mar 26 / Jun 27", 3, 2026},
		{"cash undated", "Cash", UndatedMonth, UndatedYear},
		{"sponsor undated", "Invesco Government & Agency Portfolio", UndatedMonth, UndatedYear},
		{"empty", "", UndatedMonth, UndatedYear},
		{"month without year", "Capesize March", UndatedMonth, UndatedYear},
	}

	patterns := bdry().DatePatterns
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := ExtractMonthYear(tt.input, patterns)
			if month != tt.wantMonth {
				t.Errorf("month = %d, want %d", month, tt.wantMonth)
			}
			if year != tt.wantYear {
				t.Errorf("year = %d, want %d", year, tt.wantYear)
			}
		})
	}
}

func TestExtractMonthYearPatternOrder(t *testing.T) {
	quarter := regexp.MustCompile(`(?i)q1 (?:(jan))?(\d{2})`)
	patterns := []*regexp.Regexp{quarter, monthYearPattern}

	month, year := ExtractMonthYear("Capesize Q1 27", patterns)
	if month != UndatedMonth || year != 2027 {
		t.Errorf("got (%d, %d), want (%d, 2027)", month, year, UndatedMonth)
	}

	month, year = ExtractMonthYear("Capesize Apr 26", patterns)
	if month != 4 || year != 2026 {
		t.Errorf("got (%d, %d), want (4, 2026)", month, year)
	}
}

func TestExtractMonthYearNoPatterns(t *testing.T) {
	month, year := ExtractMonthYear("Capesize Mar 26", nil)
	if month != UndatedMonth || year != UndatedYear {
		t.Errorf("got (%d, %d), want sentinel", month, year)
	}
}
