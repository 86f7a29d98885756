package gridview

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each data load.
	// count is the number of rows loaded, err is nil if successful.
	RecordLoad(count int, duration time.Duration, err error)

	// RecordRecompute is called after each pipeline recompute.
	// visible is the resulting visible row count.
	RecordRecompute(visible int, duration time.Duration)

	// RecordScrollTo is called after each scrollToIndex command.
	RecordScrollTo(duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save or load.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRecompute(int, time.Duration)   {}
func (NoopMetricsCollector) RecordScrollTo(time.Duration, error)  {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount           atomic.Int64
	LoadErrors          atomic.Int64
	LoadRows            atomic.Int64
	RecomputeCount      atomic.Int64
	RecomputeTotalNanos atomic.Int64
	ScrollToCount       atomic.Int64
	ScrollToErrors      atomic.Int64
	SnapshotCount       atomic.Int64
	SnapshotErrors      atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(count int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadRows.Add(int64(count))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordRecompute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecompute(visible int, duration time.Duration) {
	b.RecomputeCount.Add(1)
	b.RecomputeTotalNanos.Add(duration.Nanoseconds())
}

// RecordScrollTo implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScrollTo(duration time.Duration, err error) {
	b.ScrollToCount.Add(1)
	if err != nil {
		b.ScrollToErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}
