package gridview

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumns is returned when a table is constructed without columns.
	ErrNoColumns = errors.New("gridview: at least one column is required")

	// ErrNoMeasurer is returned by window commands when the table was built
	// without a render-adapter measurer.
	ErrNoMeasurer = errors.New("gridview: no measurer configured, windowing disabled")
)

// ErrDuplicateField indicates two columns addressing the same field.
type ErrDuplicateField struct {
	Field string
}

func (e *ErrDuplicateField) Error() string {
	return fmt.Sprintf("gridview: duplicate column field %q", e.Field)
}
