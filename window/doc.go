// Package window computes which contiguous slice of the visible row set
// must be materialized for the current scroll position.
//
// Row height is not configured; it is measured once per load by rendering a
// bounded sample of rows through the Measurer and averaging their extents.
// Every scroll tick then maps pixels to indices in O(1). Two spacer extents
// stand in for all non-materialized rows so the scrollable region keeps its
// correct total size no matter how few rows exist as visual elements.
//
// High-frequency scroll events are coalesced: OnScroll only records the
// newest offset, and Tick — called once per animation frame by the host —
// applies it. An older pending offset is superseded, never queued.
package window
