// Package sorter orders the filtered and searched row set. Active column
// directives compare in priority order; the search score (when present) is
// the first key, descending; the load-time ordinal is the final tie-break,
// which makes the sort deterministic, stable and idempotent.
package sorter

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/gridview/internal/rowindex"
	"github.com/hupe1980/gridview/model"
)

// Directive is one active column sort.
type Directive struct {
	Field    string
	Order    model.SortOrder
	Priority int
	Compare  model.CompareFunc
}

// Directives extracts the active sorts from the columns, ordered by
// priority. Hidden columns are not eligible.
func Directives(cols []*model.Column) []Directive {
	var out []Directive
	for _, col := range cols {
		if col.Hidden || !col.Sortable || col.Order == model.SortNone {
			continue
		}
		out = append(out, Directive{
			Field:    col.Field,
			Order:    col.Order,
			Priority: col.Priority,
			Compare:  col.Compare,
		})
	}
	slices.SortFunc(out, func(a, b Directive) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out
}

// Apply sorts ords in place. scores, when non-nil, is the primary key in
// descending order so best matches surface first.
func Apply(idx *rowindex.Index, ords []int, dirs []Directive, scores map[int]float64) {
	slices.SortFunc(ords, func(a, b int) int {
		if scores != nil {
			if c := cmp.Compare(scores[b], scores[a]); c != 0 {
				return c
			}
		}
		for _, d := range dirs {
			ka, _ := idx.SortKey(a, d.Field)
			kb, _ := idx.SortKey(b, d.Field)
			if d.Order == model.SortDesc {
				// Comparators only ever see ascending logic; the
				// engine orients the operands.
				ka, kb = kb, ka
			}
			var c int
			if d.Compare != nil {
				c = d.Compare(ka, kb)
			} else {
				c = CompareKeys(ka, kb)
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a, b)
	})
}

// CompareKeys orders two cached sort keys ascending. nil keys (absent or
// null values) group together after all non-nil keys. Mixed-kind keys fall
// back to their string forms so the ordering stays total.
func CompareKeys(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}

	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(model.Stringify(a), model.Stringify(b))
}

// NextOrder advances the single-column cycle none -> asc -> desc -> none.
func NextOrder(o model.SortOrder) model.SortOrder {
	switch o {
	case model.SortNone:
		return model.SortAsc
	case model.SortAsc:
		return model.SortDesc
	default:
		return model.SortNone
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
