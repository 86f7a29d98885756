// Package rowindex assigns each loaded row a stable ordinal and caches the
// per-column derived values (sort keys, token lists) the query pipeline
// reads. Derivation happens once at load time so sorting and searching large
// datasets never re-derive values per keystroke.
package rowindex

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gridview/model"
	"github.com/hupe1980/gridview/tokenize"
)

// buildChunk is the number of rows derived per worker task during load.
const buildChunk = 1024

type meta struct {
	sortKeys map[string]any
	tokens   map[string][]string
}

// Index owns the loaded rows and their load-time metadata. The ordinal of a
// row is its position in the load order; it never changes within a load
// generation and is the ultimate sort tie-break.
type Index struct {
	rows       []model.Row
	meta       []meta
	generation uint64
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Load replaces the dataset. All prior metadata is discarded and ordinals
// restart at zero. The generation counter advances.
func (x *Index) Load(rows []model.Row, cols []*model.Column, tok tokenize.Tokenizer) {
	x.rows = rows
	x.meta = deriveAll(rows, cols, tok)
	x.generation++
}

// Append extends the dataset. New rows receive ordinals continuing from the
// prior maximum; existing metadata is untouched.
func (x *Index) Append(rows []model.Row, cols []*model.Column, tok tokenize.Tokenizer) {
	x.rows = append(x.rows, rows...)
	x.meta = append(x.meta, deriveAll(rows, cols, tok)...)
	x.generation++
}

// Len returns the number of loaded rows.
func (x *Index) Len() int { return len(x.rows) }

// Row returns the row at the given ordinal.
func (x *Index) Row(ordinal int) model.Row { return x.rows[ordinal] }

// Generation returns the load generation, advancing on every Load or Append.
func (x *Index) Generation() uint64 { return x.generation }

// SortKey returns the cached sort key for a field. The second return is
// false when the row has no value at that field; the sorter groups such
// rows at one consistent end.
func (x *Index) SortKey(ordinal int, field string) (any, bool) {
	k, ok := x.meta[ordinal].sortKeys[field]
	return k, ok
}

// Tokens returns the cached token list for a tokenized field, nil if the
// field is not tokenized or the row has no value there.
func (x *Index) Tokens(ordinal int, field string) []string {
	return x.meta[ordinal].tokens[field]
}

// deriveAll computes metadata for a batch of rows. Work is fanned out in
// chunks and joined before returning, so callers observe a fully built
// index; the query path itself stays single-threaded.
func deriveAll(rows []model.Row, cols []*model.Column, tok tokenize.Tokenizer) []meta {
	out := make([]meta, len(rows))
	if len(rows) == 0 {
		return out
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(rows); start += buildChunk {
		end := min(start+buildChunk, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = deriveRow(rows[i], cols, tok)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return out
}

func deriveRow(row model.Row, cols []*model.Column, tok tokenize.Tokenizer) meta {
	m := meta{sortKeys: make(map[string]any, len(cols))}
	for _, col := range cols {
		value, ok := model.Lookup(row, col.Field)

		if col.Sortable && ok {
			m.sortKeys[col.Field] = sortKey(col, value)
		}

		if col.Searchable && col.Tokenize && ok {
			if m.tokens == nil {
				m.tokens = make(map[string][]string)
			}
			text := model.Stringify(value)
			if col.Tokenizer != nil {
				m.tokens[col.Field] = col.Tokenizer(text)
			} else {
				m.tokens[col.Field] = tok.Tokenize(text)
			}
		}
	}
	return m
}

func sortKey(col *model.Column, value any) any {
	if col.SortValue != nil {
		return col.SortValue(value)
	}
	if s, ok := value.(string); ok {
		return strings.ToLower(s)
	}
	return value
}
