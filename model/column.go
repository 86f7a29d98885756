package model

// SortOrder is the requested direction of a column sort.
type SortOrder uint8

const (
	// SortNone means the column takes no part in sorting.
	SortNone SortOrder = iota
	// SortAsc sorts ascending.
	SortAsc
	// SortDesc sorts descending.
	SortDesc
)

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	switch o {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// CompareFunc compares two cached sort keys and returns a negative, zero or
// positive value, ordering a before, equal to or after b.
//
// Comparators are always written ascending: for a descending sort the engine
// swaps the operands before calling.
type CompareFunc func(a, b any) int

// FilterFunc decides whether a field value satisfies a filter criterion.
type FilterFunc func(value, criterion any) bool

// SortValueFunc derives the cached sort key for a field value at load time.
type SortValueFunc func(value any) any

// TokenizeFunc overrides tokenization of a field value at load time.
type TokenizeFunc func(value string) []string

// Column describes one column of the table. It is a capability record: the
// optional function fields inject per-column behavior, and a nil function
// falls back to the documented default.
//
// Columns are mutable configuration owned by the table. Sort state (Order,
// Priority) and visibility persist across data reloads.
type Column struct {
	// Field addresses the row value, optionally as a dot path.
	Field string
	// Title is the display caption. Not interpreted by the engine.
	Title string

	// Sortable enables sorting on this column.
	Sortable bool
	// Searchable includes this column in text search.
	Searchable bool
	// Tokenize caches a token list for this column at load time and
	// switches search to per-token matching.
	Tokenize bool
	// Hidden excludes the column from display and from sort/search
	// eligibility. The zero value keeps a column visible.
	Hidden bool

	// Order is the active sort direction, SortNone when inactive.
	Order SortOrder
	// Priority ranks active sorts; lower values compare first. Zero means
	// unranked. Gaps between priorities are permitted.
	Priority int

	// Compare overrides sort-key comparison.
	Compare CompareFunc
	// Filter overrides criterion matching.
	Filter FilterFunc
	// SortValue overrides sort-key derivation.
	SortValue SortValueFunc
	// Tokenizer overrides the table tokenizer for this column's values.
	Tokenizer TokenizeFunc
}

// VisibleRow is one entry of the derived visible row set.
type VisibleRow struct {
	// Row is the original caller-owned record.
	Row Row
	// Ordinal is the stable load-time position of the row.
	Ordinal int
	// Score is the search relevance; zero when no search is active.
	Score float64
}
