// Package model defines the shared data types of the gridview engine:
// rows, column descriptors and the visible-row projection.
//
// Rows are caller-owned and never mutated by the engine; all derived state
// lives in side structures keyed by a row's ordinal index.
package model
