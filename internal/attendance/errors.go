package attendance

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when an upload contains no data rows.
var ErrEmptyBatch = errors.New("batch contains no attendance rows")

// ParseError reports a work-time label that matches none of the
// recognized "N시간 M분" forms.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized work time format: %q", e.Text)
}

// ValidationError reports a malformed attendance row. Row is the
// 1-based position of the row within its upload batch.
type ValidationError struct {
	Row        int
	EmployeeID string
	Field      string
	Err        error
}

func (e *ValidationError) Error() string {
	if e.EmployeeID != "" {
		return fmt.Sprintf("row %d (employee %s): invalid %s: %v", e.Row, e.EmployeeID, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: invalid %s: %v", e.Row, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
