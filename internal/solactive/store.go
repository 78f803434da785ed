package solactive

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/mtlprog/freightstat/internal/domain"
)

// Column names of the saved quote file.
var Columns = []string{
	"Index", "Last_Updated", "Last_Quote_Date", "Last_Quote_Value",
	"Day_Range_Low", "Day_Range_High", "Change_Abs", "Change_Rel",
	"Year_Range_Low", "Year_Range_High",
}

// Save writes the quote as a single-row CSV, replacing any previous file.
func Save(path string, q Quote) error {
	values := []string{
		string(q.Fund),
		q.UpdatedAt.Format("2006-01-02 15:04:05"),
		q.LastDate,
		domain.FormatAmount(q.Last),
		domain.FormatAmount(q.DayLow),
		domain.FormatAmount(q.DayHigh),
		domain.FormatAmount(q.ChangeAbs),
		domain.FormatAmount(q.ChangeRel),
		domain.FormatAmount(q.YearLow),
		domain.FormatAmount(q.YearHigh),
	}
	cols := make([]series.Series, len(Columns))
	for i, name := range Columns {
		cols[i] = series.New([]string{values[i]}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return fmt.Errorf("building %s: %w", path, df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
