// Package rowset provides an ordinal set backed by a 32-bit Roaring Bitmap.
// It is the currency of the filter and search engines: each pipeline stage
// produces or narrows a Set of row ordinals.
package rowset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of row ordinals.
// It wraps the official roaring implementation.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Full creates a set containing every ordinal in [0, n).
func Full(n int) *Set {
	s := New()
	if n > 0 {
		s.rb.AddRange(0, uint64(n))
	}
	return s
}

// Add adds an ordinal to the set.
func (s *Set) Add(ordinal int) {
	s.rb.Add(uint32(ordinal))
}

// Contains checks if an ordinal is in the set.
func (s *Set) Contains(ordinal int) bool {
	return ordinal >= 0 && s.rb.Contains(uint32(ordinal))
}

// Len returns the number of ordinals in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// And narrows the set to the intersection with other.
func (s *Set) And(other *Set) {
	s.rb.And(other.rb)
}

// Or widens the set to the union with other.
func (s *Set) Or(other *Set) {
	s.rb.Or(other.rb)
}

// Ordinals returns an iterator over the set in ascending order.
func (s *Set) Ordinals() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Slice materializes the set as an ascending slice of ordinals.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Len())
	for ord := range s.Ordinals() {
		out = append(out, ord)
	}
	return out
}
