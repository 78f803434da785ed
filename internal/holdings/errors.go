package holdings

import (
	"errors"
	"fmt"
)

// ErrMissingValue indicates a required cell is blank.
var ErrMissingValue = errors.New("missing value")

// RowError reports a malformed holding row by its position in the source table.
type RowError struct {
	Row   int
	Name  string
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d (%q): %s: %v", e.Row, e.Name, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
