package window

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/time/rate"
)

// Measurer renders a bounded sample of rows off-screen and reports their
// pixel extents. It is implemented by the render adapter.
type Measurer interface {
	// MeasureRows renders the first n rows off-screen and returns one
	// measured height per row.
	MeasureRows(n int) ([]float64, error)
}

// Range is the materialization contract: the index slice to render and the
// spacer extents standing in for everything else.
type Range struct {
	// Start is the first index to materialize. Always even unless zero
	// rows are visible.
	Start int
	// Count is the number of rows to materialize.
	Count int
	// LeadingPx and TrailingPx are the spacer extents above and below the
	// materialized slice.
	LeadingPx  float64
	TrailingPx float64
}

// End returns the exclusive end index of the range.
func (r Range) End() int { return r.Start + r.Count }

const (
	// DefaultPadding is the number of extra rows materialized on each side
	// of the viewport.
	DefaultPadding = 2
	// DefaultSampleCap bounds how many rows the height measurement renders.
	DefaultSampleCap = 10

	// maxExtentPx is the pixel extent at which browser engines clamp a
	// monolithic scrollable region (~3.35e7 px). Beyond it the
	// index-to-pixel mapping degrades; the window warns once and carries
	// on rather than failing.
	maxExtentPx = 33_500_000
)

// Options configures a Window.
type Options struct {
	// Padding is the overscan row count per side.
	Padding int
	// SampleCap bounds the measurement sample size.
	SampleCap int
	// Logger receives the extent warning. Defaults to slog.Default().
	Logger *slog.Logger
}

// Window maps a scroll offset to the contiguous index range that must be
// materialized. It holds no row data, only counts, extents and offsets.
//
// A Window is single-goroutine, like the table that owns it.
type Window struct {
	measurer  Measurer
	padding   int
	sampleCap int
	logger    *slog.Logger

	rowCount   int
	rowHeight  float64
	viewportPx float64
	offsetPx   float64
	measured   bool
	rng        Range

	pendingPx  float64
	hasPending bool

	warnExtent rate.Sometimes
	onChange   func(Range)
}

// New creates a Window that measures through m.
func New(m Measurer, optFns ...func(*Options)) *Window {
	opts := Options{
		Padding:   DefaultPadding,
		SampleCap: DefaultSampleCap,
		Logger:    slog.Default(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	if opts.SampleCap < 1 {
		opts.SampleCap = 1
	}
	return &Window{
		measurer:   m,
		padding:    opts.Padding,
		sampleCap:  opts.SampleCap,
		logger:     opts.Logger,
		warnExtent: rate.Sometimes{First: 1},
	}
}

// OnChange registers a callback invoked after every recomputed range.
func (w *Window) OnChange(fn func(Range)) { w.onChange = fn }

// Configure sets the total visible-row count and, if no valid measurement
// exists, measures row height. It must be called after every change to the
// visible row set.
//
// A zero-height measurement returns ErrZeroRowHeight; this is fatal to
// windowing and the caller should fall back to full rendering.
func (w *Window) Configure(rowCount int) error {
	w.rowCount = rowCount
	if rowCount > 0 && !w.measured {
		if err := w.measure(); err != nil {
			return err
		}
	}
	w.recompute()
	return nil
}

// Invalidate drops the cached row-height measurement. Call it when the
// dataset or column visibility changes; the next Configure re-measures.
func (w *Window) Invalidate() { w.measured = false }

// SetViewport sets the viewport height in pixels and recomputes.
func (w *Window) SetViewport(px float64) {
	w.viewportPx = px
	w.recompute()
}

// OnResize re-measures row height (extents may change with layout) and
// recomputes the range.
func (w *Window) OnResize() error {
	if w.rowCount > 0 {
		if err := w.measure(); err != nil {
			return err
		}
	}
	w.recompute()
	return nil
}

// OnScroll records a new scroll offset. Offsets are coalesced: only the
// newest one is honored by the next Tick.
func (w *Window) OnScroll(offsetPx float64) {
	w.pendingPx = offsetPx
	w.hasPending = true
}

// Tick applies at most one pending scroll offset. The host calls it once
// per animation frame.
func (w *Window) Tick() {
	if !w.hasPending {
		return
	}
	w.offsetPx = math.Max(0, w.pendingPx)
	w.hasPending = false
	w.recompute()
}

// ScrollToIndex moves the window so that row i is at the top of the
// viewport, returning the resulting scroll offset for the host to apply.
// An index outside [0, rowCount) raises a RangeError.
func (w *Window) ScrollToIndex(i int) (float64, error) {
	if i < 0 || i >= w.rowCount {
		return 0, &RangeError{Index: i, RowCount: w.rowCount}
	}
	if !w.measured || w.rowHeight <= 0 {
		return 0, ErrNotMeasured
	}

	offset := float64(i) * w.rowHeight
	if maxOffset := w.totalPx() - w.viewportPx; offset > maxOffset {
		offset = math.Max(0, maxOffset)
	}
	w.offsetPx = offset
	w.hasPending = false
	w.recompute()
	return offset, nil
}

// Range returns the current materialization range.
func (w *Window) Range() Range { return w.rng }

// RowHeight returns the measured average row height, zero before the first
// successful measurement.
func (w *Window) RowHeight() float64 {
	if !w.measured {
		return 0
	}
	return w.rowHeight
}

func (w *Window) totalPx() float64 {
	return float64(w.rowCount) * w.rowHeight
}

// measure samples min(rowCount, sampleCap) rows through the render adapter
// and averages their extents. Uneven row heights are tolerated; a
// non-positive average is not.
func (w *Window) measure() error {
	n := min(w.rowCount, w.sampleCap)
	heights, err := w.measurer.MeasureRows(n)
	if err != nil {
		return fmt.Errorf("window: measure rows: %w", err)
	}

	sum := 0.0
	for _, h := range heights {
		sum += h
	}
	if len(heights) == 0 || sum <= 0 {
		return ErrZeroRowHeight
	}

	w.rowHeight = sum / float64(len(heights))
	w.measured = true
	return nil
}

// recompute derives the index range and spacer extents for the current
// offset. The start index is rounded down to an even value for alternating
// row styling; the lost row is compensated by growing the count, so no row
// inside the viewport band is ever skipped.
func (w *Window) recompute() {
	if w.rowCount == 0 || !w.measured || w.rowHeight <= 0 {
		w.setRange(Range{})
		return
	}

	total := w.totalPx()
	if total >= maxExtentPx {
		w.warnExtent.Do(func() {
			w.logger.Warn("scrollable extent exceeds browser pixel ceiling; windowing may be unreliable",
				"total_px", total,
				"ceiling_px", maxExtentPx,
			)
		})
	}

	start := int(math.Floor(w.offsetPx/w.rowHeight)) - w.padding
	if start < 0 {
		start = 0
	}
	count := int(math.Ceil(w.viewportPx/w.rowHeight)) + 2*w.padding
	if start%2 == 1 {
		start--
		count++
	}
	if start >= w.rowCount {
		start = w.rowCount - 1
		if start%2 == 1 {
			start--
		}
	}
	if start+count > w.rowCount {
		count = w.rowCount - start
	}

	leading := float64(start) * w.rowHeight
	trailing := total - leading - float64(count)*w.rowHeight
	if trailing < 0 {
		trailing = 0
	}

	w.setRange(Range{
		Start:      start,
		Count:      count,
		LeadingPx:  leading,
		TrailingPx: trailing,
	})
}

func (w *Window) setRange(r Range) {
	w.rng = r
	if w.onChange != nil {
		w.onChange(r)
	}
}
