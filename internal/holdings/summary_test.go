package holdings

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/freightstat/internal/domain"
)

func TestSummarize(t *testing.T) {
	rows := []domain.HoldingRow{
		row("Capesize Jun 26", 100, 0),
		row("Cash", 50, 1),
		row("Panamax Mar 26", 75, 2),
		row("Capesize Mar 26", 25, 3),
	}

	got, err := Summarize(rows, bdry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		label   string
		value   string
		percent string
		count   int
	}{
		{LabelCapesize, "125", "50", 2},
		{LabelPanamax, "75", "30", 1},
		{LabelCash, "50", "20", 1},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Category.Label != w.label {
			t.Errorf("[%d] Label = %q, want %q", i, got[i].Category.Label, w.label)
		}
		if !got[i].Value.Equal(decimal.RequireFromString(w.value)) {
			t.Errorf("[%d] Value = %s, want %s", i, got[i].Value, w.value)
		}
		if !got[i].Percent.Equal(decimal.RequireFromString(w.percent)) {
			t.Errorf("[%d] Percent = %s, want %s", i, got[i].Percent, w.percent)
		}
		if got[i].Count != w.count {
			t.Errorf("[%d] Count = %d, want %d", i, got[i].Count, w.count)
		}
	}
}

func TestSummarizeIncludesOther(t *testing.T) {
	got, err := Summarize([]domain.HoldingRow{row("Mystery", 10, 0)}, bwet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Category.Label != LabelOther {
		t.Fatalf("got %+v, want single other bucket", got)
	}
	if !got[0].Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Percent = %s, want 100", got[0].Percent)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got, err := Summarize(nil, bdry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestSummarizeMissingValue(t *testing.T) {
	_, err := Summarize([]domain.HoldingRow{{Name: "Cash"}}, bdry())
	if !errors.Is(err, ErrMissingValue) {
		t.Errorf("error = %v, want ErrMissingValue", err)
	}
}
