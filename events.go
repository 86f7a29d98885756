package gridview

import "strings"

// Facet identifies which inputs of the pipeline changed. Facets combine as
// a bitmask so collaborators can react selectively, e.g. persist only sort
// changes.
type Facet uint8

const (
	// FacetData marks a dataset load or append.
	FacetData Facet = 1 << iota
	// FacetFilter marks a filter change.
	FacetFilter
	// FacetSearch marks a search query change.
	FacetSearch
	// FacetSort marks a sort directive change.
	FacetSort
	// FacetColumns marks a column visibility change.
	FacetColumns
)

// Has reports whether f contains x.
func (f Facet) Has(x Facet) bool { return f&x != 0 }

// String implements fmt.Stringer.
func (f Facet) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, e := range [...]struct {
		bit  Facet
		name string
	}{
		{FacetData, "data"},
		{FacetFilter, "filter"},
		{FacetSearch, "search"},
		{FacetSort, "sort"},
		{FacetColumns, "columnVisibility"},
	} {
		if f.Has(e.bit) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// Change is the notification emitted after each pipeline recompute.
type Change struct {
	// Facets are the inputs that triggered the recompute.
	Facets Facet
	// RowCount is the new visible row count.
	RowCount int
	// Generation is the load generation the visible set derives from.
	Generation uint64
}
