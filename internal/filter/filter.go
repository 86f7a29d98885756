// Package filter evaluates declarative and functional filter specs against
// the row index, producing the set of passing ordinals.
//
// Object-form specs AND across fields and OR within array-valued criteria.
// An empty array criterion places no constraint on its field, so an empty
// multi-select never hides the whole dataset.
package filter

import (
	"reflect"
	"regexp"

	"github.com/hupe1980/gridview/internal/rowindex"
	"github.com/hupe1980/gridview/internal/rowset"
	"github.com/hupe1980/gridview/model"
)

// Spec is a filter in one of its two mutually exclusive forms. The table
// enforces exclusivity: setting one form clears the other.
type Spec struct {
	// Fields maps a field name to its criterion: a scalar compared for
	// equality, a *regexp.Regexp tested against the stringified value, a
	// slice treated as logical OR, or an arbitrary value handed to the
	// column's Filter function.
	Fields map[string]any

	// Fn is the functional form; its boolean return is authoritative and
	// no field-by-field logic applies.
	Fn func(row model.Row, ordinal int) bool
}

// IsZero reports whether no filter is active.
func (s Spec) IsZero() bool { return s.Fields == nil && s.Fn == nil }

// Apply evaluates the spec over every loaded row. cols maps field name to
// column descriptor for criterion dispatch; fields without a column use the
// default matching chain.
func Apply(idx *rowindex.Index, cols map[string]*model.Column, s Spec) *rowset.Set {
	if s.IsZero() {
		return rowset.Full(idx.Len())
	}

	out := rowset.New()
	for i := 0; i < idx.Len(); i++ {
		row := idx.Row(i)
		if s.Fn != nil {
			if s.Fn(row, i) {
				out.Add(i)
			}
			continue
		}
		if matchRow(row, cols, s.Fields) {
			out.Add(i)
		}
	}
	return out
}

func matchRow(row model.Row, cols map[string]*model.Column, fields map[string]any) bool {
	for field, criterion := range fields {
		value, _ := model.Lookup(row, field)
		if !matchField(cols[field], value, criterion) {
			return false
		}
	}
	return true
}

// matchField dispatches in precedence order: column predicate, array OR,
// pattern, equality.
func matchField(col *model.Column, value, criterion any) bool {
	if col != nil && col.Filter != nil {
		return col.Filter(value, criterion)
	}
	if elems, ok := criterionSlice(criterion); ok {
		if len(elems) == 0 {
			return true // no constraint
		}
		for _, e := range elems {
			if matchScalar(value, e) {
				return true
			}
		}
		return false
	}
	return matchScalar(value, criterion)
}

func matchScalar(value, criterion any) bool {
	if re, ok := criterion.(*regexp.Regexp); ok {
		return re.MatchString(model.Stringify(value))
	}
	return Equal(value, criterion)
}

// criterionSlice unpacks a slice- or array-valued criterion. []byte stays a
// scalar.
func criterionSlice(criterion any) ([]any, bool) {
	if criterion == nil {
		return nil, false
	}
	if _, ok := criterion.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(criterion)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Equal compares a field value with a criterion. nil equals only nil, so
// callers can filter explicitly for absent data. Numeric comparison is loose
// across integer and float widths; datasets decoded from JSON carry float64
// where the criterion is often an untyped int.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := asFloat64(a); ok {
		bf, ok := asFloat64(b)
		return ok && af == bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
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
