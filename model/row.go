package model

import (
	"fmt"
	"strings"
)

// Row is a caller-owned record: a mapping of field name to arbitrary value.
// Field names may address nested values via dot paths ("user.name").
//
// The engine treats rows as opaque and never mutates them.
type Row map[string]any

// Lookup resolves a field against a row. A key that exists verbatim wins over
// dot-path traversal, so callers can use literal keys containing dots.
//
// Traversal fails closed: a missing or non-traversable intermediate segment
// yields (nil, false), never a panic.
func Lookup(row Row, field string) (any, bool) {
	if row == nil {
		return nil, false
	}
	if v, ok := row[field]; ok {
		return v, true
	}
	if !strings.Contains(field, ".") {
		return nil, false
	}

	var cur any = row
	for field != "" {
		var seg string
		if i := strings.IndexByte(field, '.'); i >= 0 {
			seg, field = field[:i], field[i+1:]
		} else {
			seg, field = field, ""
		}

		var m map[string]any
		switch v := cur.(type) {
		case Row:
			m = v
		case map[string]any:
			m = v
		default:
			return nil, false
		}

		var ok bool
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Stringify renders a field value for substring and pattern matching.
// nil renders as the empty string so absent data never matches text queries.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
