package window

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMeasurer reports a fixed height per sampled row.
type stubMeasurer struct {
	height float64
	calls  int
}

func (m *stubMeasurer) MeasureRows(n int) ([]float64, error) {
	m.calls++
	out := make([]float64, n)
	for i := range out {
		out[i] = m.height
	}
	return out, nil
}

// unevenMeasurer reports alternating heights around an average of 25.
type unevenMeasurer struct{}

func (unevenMeasurer) MeasureRows(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = 20
		} else {
			out[i] = 30
		}
	}
	return out, nil
}

func newWindow(t *testing.T, m Measurer, rowCount int, viewport float64) *Window {
	t.Helper()
	w := New(m)
	w.SetViewport(viewport)
	require.NoError(t, w.Configure(rowCount))
	return w
}

func scrollTo(w *Window, px float64) {
	w.OnScroll(px)
	w.Tick()
}

func TestMeasurement(t *testing.T) {
	t.Run("AveragesUnevenSample", func(t *testing.T) {
		w := newWindow(t, unevenMeasurer{}, 100, 250)
		assert.InDelta(t, 25.0, w.RowHeight(), 1e-9)
	})

	t.Run("ZeroHeightIsFatal", func(t *testing.T) {
		w := New(&stubMeasurer{height: 0})
		err := w.Configure(100)
		assert.ErrorIs(t, err, ErrZeroRowHeight)
	})

	t.Run("MeasurerErrorWrapped", func(t *testing.T) {
		w := New(failingMeasurer{})
		err := w.Configure(10)
		assert.ErrorContains(t, err, "measure rows")
	})

	t.Run("MeasuredOncePerConfiguration", func(t *testing.T) {
		m := &stubMeasurer{height: 20}
		w := newWindow(t, m, 100, 400)
		require.NoError(t, w.Configure(50))
		require.NoError(t, w.Configure(70))
		assert.Equal(t, 1, m.calls)

		w.Invalidate()
		require.NoError(t, w.Configure(70))
		assert.Equal(t, 2, m.calls)
	})

	t.Run("EmptyDatasetNeedsNoMeasurement", func(t *testing.T) {
		m := &stubMeasurer{height: 20}
		w := New(m)
		require.NoError(t, w.Configure(0))
		assert.Equal(t, 0, m.calls)
		assert.Equal(t, Range{}, w.Range())
	})
}

type failingMeasurer struct{}

func (failingMeasurer) MeasureRows(int) ([]float64, error) {
	return nil, errors.New("adapter gone")
}

func TestRangeComputation(t *testing.T) {
	const (
		rowHeight = 20.0
		rowCount  = 1000
		viewport  = 200.0
	)
	w := newWindow(t, &stubMeasurer{height: rowHeight}, rowCount, viewport)

	t.Run("TopOfList", func(t *testing.T) {
		scrollTo(w, 0)
		r := w.Range()
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 0.0, r.LeadingPx)
		// viewport/rowHeight + 2*padding
		assert.Equal(t, 14, r.Count)
	})

	t.Run("StartIndexAlwaysEven", func(t *testing.T) {
		for px := 0.0; px <= 2000; px += 7 {
			scrollTo(w, px)
			assert.Zero(t, w.Range().Start%2, "offset %f", px)
		}
	})

	t.Run("CoverageInvariant", func(t *testing.T) {
		maxOffset := rowCount*rowHeight - viewport
		for px := 0.0; px <= maxOffset; px += 13 {
			scrollTo(w, px)
			r := w.Range()
			firstVisible := int(math.Floor(px / rowHeight))
			lastVisible := int(math.Ceil((px+viewport)/rowHeight)) - 1
			if lastVisible >= rowCount {
				lastVisible = rowCount - 1
			}
			require.LessOrEqual(t, r.Start, firstVisible, "offset %f", px)
			require.Greater(t, r.End(), lastVisible, "offset %f", px)
		}
	})

	t.Run("SpacerConservation", func(t *testing.T) {
		total := rowCount * rowHeight
		for px := 0.0; px <= total-viewport; px += 97 {
			scrollTo(w, px)
			r := w.Range()
			sum := r.LeadingPx + float64(r.Count)*rowHeight + r.TrailingPx
			require.InDelta(t, total, sum, 1e-6, "offset %f", px)
		}
	})

	t.Run("BottomOfList", func(t *testing.T) {
		scrollTo(w, rowCount*rowHeight-viewport)
		r := w.Range()
		assert.Equal(t, rowCount, r.End())
		assert.Equal(t, 0.0, r.TrailingPx)
	})
}

func TestScrollCoalescing(t *testing.T) {
	w := newWindow(t, &stubMeasurer{height: 10}, 500, 100)

	var changes int
	w.OnChange(func(Range) { changes++ })

	// Several scroll events before the next frame: only the last is honored.
	w.OnScroll(100)
	w.OnScroll(900)
	w.OnScroll(2000)
	w.Tick()
	assert.Equal(t, 1, changes)
	assert.Equal(t, 200-DefaultPadding, w.Range().Start)

	// Nothing pending: Tick is a no-op.
	w.Tick()
	assert.Equal(t, 1, changes)
}

func TestScrollToIndex(t *testing.T) {
	w := newWindow(t, &stubMeasurer{height: 10}, 100, 100)

	t.Run("ValidIndex", func(t *testing.T) {
		offset, err := w.ScrollToIndex(50)
		require.NoError(t, err)
		assert.Equal(t, 500.0, offset)
		r := w.Range()
		assert.LessOrEqual(t, r.Start, 50)
		assert.Greater(t, r.End(), 50)
	})

	t.Run("ClampsNearBottom", func(t *testing.T) {
		offset, err := w.ScrollToIndex(99)
		require.NoError(t, err)
		assert.Equal(t, 100*10.0-100, offset)
	})

	t.Run("NegativeIndex", func(t *testing.T) {
		_, err := w.ScrollToIndex(-1)
		var re *RangeError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, -1, re.Index)
	})

	t.Run("IndexEqualToRowCount", func(t *testing.T) {
		_, err := w.ScrollToIndex(100)
		var re *RangeError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 100, re.RowCount)
	})
}

func TestExtentCeilingWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	w := New(&stubMeasurer{height: 40}, func(o *Options) {
		o.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})
	w.SetViewport(800)
	// 1e6 rows at 40px is 4e7 px, past the browser ceiling.
	require.NoError(t, w.Configure(1_000_000))

	scrollTo(w, 5_000)
	scrollTo(w, 90_000)
	require.NoError(t, w.Configure(1_000_001))

	// The warning fires exactly once per window instance; windowing itself
	// keeps producing ranges.
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("pixel ceiling")))
	assert.Positive(t, w.Range().Count)
	assert.GreaterOrEqual(t, w.Range().End(), 2250)
}

func TestOnResizeRemeasures(t *testing.T) {
	m := &stubMeasurer{height: 10}
	w := newWindow(t, m, 100, 100)
	m.height = 40
	require.NoError(t, w.OnResize())
	assert.Equal(t, 40.0, w.RowHeight())
}

func TestOptions(t *testing.T) {
	w := New(&stubMeasurer{height: 10}, func(o *Options) {
		o.Padding = 0
		o.SampleCap = 3
	})
	w.SetViewport(100)
	require.NoError(t, w.Configure(100))
	scrollTo(w, 0)
	assert.Equal(t, 10, w.Range().Count)
}
