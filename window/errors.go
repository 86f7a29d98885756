package window

import (
	"errors"
	"fmt"
)

// ErrZeroRowHeight is returned when the sampled rows measure to a zero (or
// negative) average height. Windowing cannot function without a positive
// index-to-pixel mapping; callers should fall back to non-windowed
// rendering.
var ErrZeroRowHeight = errors.New("window: sampled rows measured zero height")

// ErrNotMeasured is returned when a pixel-dependent operation runs before a
// successful Configure.
var ErrNotMeasured = errors.New("window: row height not measured")

// RangeError indicates a scroll target outside [0, RowCount). This is a
// programmer error and is raised synchronously.
type RangeError struct {
	Index    int
	RowCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("window: index %d out of range [0, %d)", e.Index, e.RowCount)
}
