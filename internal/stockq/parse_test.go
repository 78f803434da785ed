package stockq

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const samplePage = `<html><body>
<table><tr><td>Menu</td></tr></table>
<table>
  <tr><th>Date</th><th>Index</th><th>Change%</th></tr>
  <tr><td>2026/10/16</td><td>1,987</td><td>+1.22%</td></tr>
  <tr><td> 2026/10/15 </td><td><b>1,963</b></td><td>-0.51%</td></tr>
  <tr><td>not a date</td><td>1,000</td><td>0%</td></tr>
  <tr><td>2026/10/14</td><td>n/a</td><td>0%</td></tr>
  <tr><td>2026/10/13</td><td>1,970</td></tr>
</table>
<table>
  <tr><td>Date</td><td>Index</td><td>Change%</td></tr>
  <tr><td>2026/10/12</td><td>1,975.5</td><td>0.00%</td></tr>
</table>
</body></html>`

func TestParseTables(t *testing.T) {
	points, err := ParseTables(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 3 {
		t.Fatalf("len = %d, want 3", len(points))
	}

	tests := []struct {
		date   string
		value  string
		change string
	}{
		{"2026-10-16", "1987", "+1.22%"},
		{"2026-10-15", "1963", "-0.51%"},
		{"2026-10-12", "1975.5", "0.00%"},
	}
	for i, tt := range tests {
		wantDate, _ := time.Parse("2006-01-02", tt.date)
		if !points[i].Date.Equal(wantDate) {
			t.Errorf("[%d] Date = %v, want %v", i, points[i].Date, wantDate)
		}
		if !points[i].Value.Equal(decimal.RequireFromString(tt.value)) {
			t.Errorf("[%d] Value = %s, want %s", i, points[i].Value, tt.value)
		}
		if points[i].Change != tt.change {
			t.Errorf("[%d] Change = %q, want %q", i, points[i].Change, tt.change)
		}
	}
}

func TestParseTablesNoTables(t *testing.T) {
	points, err := ParseTables(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("len = %d, want 0", len(points))
	}
}
