package rowindex

import "github.com/hupe1980/gridview/model"

// State is the serializable form of an Index, used by table snapshots.
//
// NOTE: This is a persistence format; keep it stable. Numeric sort keys
// round-trip through the codec as float64, which the sorter's numeric
// comparison absorbs.
type State struct {
	Generation uint64                `json:"generation"`
	Rows       []map[string]any      `json:"rows"`
	SortKeys   []map[string]any      `json:"sortKeys"`
	Tokens     []map[string][]string `json:"tokens,omitempty"`
}

// State exports the index for snapshotting.
func (x *Index) State() *State {
	s := &State{
		Generation: x.generation,
		Rows:       make([]map[string]any, len(x.rows)),
		SortKeys:   make([]map[string]any, len(x.meta)),
		Tokens:     make([]map[string][]string, len(x.meta)),
	}
	for i, r := range x.rows {
		s.Rows[i] = r
	}
	for i, m := range x.meta {
		s.SortKeys[i] = m.sortKeys
		s.Tokens[i] = m.tokens
	}
	return s
}

// Restore replaces the index content from a snapshot state, skipping all
// derivation work.
func (x *Index) Restore(s *State) {
	x.rows = make([]model.Row, len(s.Rows))
	x.meta = make([]meta, len(s.Rows))
	for i, r := range s.Rows {
		x.rows[i] = model.Row(r)
		m := meta{sortKeys: s.SortKeys[i]}
		if m.sortKeys == nil {
			m.sortKeys = map[string]any{}
		}
		if i < len(s.Tokens) {
			m.tokens = s.Tokens[i]
		}
		x.meta[i] = m
	}
	x.generation = s.Generation
}
