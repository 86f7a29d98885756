// Package search evaluates a query against the searchable fields of each
// row, producing the matching ordinals together with a relevance score.
//
// Literal queries are tokenized with the same tokenizer as data load and
// scored per matching token; pattern queries test each field's raw
// stringified value directly, bypassing tokenization entirely.
package search

import (
	"regexp"
	"strings"

	"github.com/hupe1980/gridview/internal/rowindex"
	"github.com/hupe1980/gridview/internal/rowset"
	"github.com/hupe1980/gridview/model"
	"github.com/hupe1980/gridview/tokenize"
)

// Match-kind weights. Length-scaled contributions under these weights keep
// exact >= prefix >= substring for any common query token, which is the
// ranking contract of the engine.
const (
	weightExact     = 3.0
	weightPrefix    = 2.0
	weightSubstring = 1.0
)

// Query is a search query: a literal case-insensitive string or a pattern.
// Pattern takes precedence when both are set. The empty query matches
// everything and produces no scores.
type Query struct {
	Text    string
	Pattern *regexp.Regexp
}

// IsZero reports whether no query is active.
func (q Query) IsZero() bool { return q.Pattern == nil && q.Text == "" }

// Field names a searchable field. Tokenized fields match per cached token;
// the rest take a whole-query substring test against the stringified value.
type Field struct {
	Name     string
	Tokenize bool
}

// Result is the outcome of a search pass.
type Result struct {
	// Set holds the ordinals with at least one positively matching field.
	Set *rowset.Set
	// Scores maps matched ordinals to accumulated relevance. Nil when the
	// query was empty (scoring then plays no part in sorting).
	Scores map[int]float64
}

// Apply narrows within to the rows matching q. within is not mutated.
func Apply(idx *rowindex.Index, fields []Field, q Query, tok tokenize.Tokenizer, within *rowset.Set) Result {
	if q.IsZero() {
		return Result{Set: within.Clone()}
	}
	if q.Pattern != nil {
		return applyPattern(idx, fields, q.Pattern, within)
	}

	qlower := strings.ToLower(strings.TrimSpace(q.Text))
	if qlower == "" {
		// Whitespace-only query: no exclusion, no scoring.
		return Result{Set: within.Clone()}
	}
	// A query may normalize to zero tokens (punctuation only) and still
	// carry a whole-query substring test for non-tokenized fields.
	qtoks := tokenize.ParseQuery(q.Text, tok)

	out := rowset.New()
	scores := make(map[int]float64)
	for ord := range within.Ordinals() {
		score := scoreRow(idx, ord, fields, qtoks, qlower)
		if score > 0 {
			out.Add(ord)
			scores[ord] = score
		}
	}
	return Result{Set: out, Scores: scores}
}

func applyPattern(idx *rowindex.Index, fields []Field, re *regexp.Regexp, within *rowset.Set) Result {
	out := rowset.New()
	scores := make(map[int]float64)
	for ord := range within.Ordinals() {
		row := idx.Row(ord)
		matched := 0.0
		for _, f := range fields {
			value, ok := model.Lookup(row, f.Name)
			if ok && re.MatchString(model.Stringify(value)) {
				matched++
			}
		}
		if matched > 0 {
			out.Add(ord)
			scores[ord] = matched
		}
	}
	return Result{Set: out, Scores: scores}
}

// scoreRow accumulates contributions across fields. For tokenized fields
// each query token contributes its best match against the cached token
// list; quoted tokens match as literal substrings of the raw lowercased
// value. Non-tokenized fields take a single whole-query substring test.
func scoreRow(idx *rowindex.Index, ord int, fields []Field, qtoks []tokenize.QueryToken, qlower string) float64 {
	row := idx.Row(ord)
	score := 0.0
	for _, f := range fields {
		if !f.Tokenize {
			value, ok := model.Lookup(row, f.Name)
			if !ok {
				continue
			}
			raw := strings.ToLower(model.Stringify(value))
			if qlower != "" && strings.Contains(raw, qlower) {
				score += contribution(qlower, raw)
			}
			continue
		}

		rowToks := idx.Tokens(ord, f.Name)
		raw := "" // lazily derived, only quoted tokens need it
		for _, qt := range qtoks {
			if qt.Literal {
				if raw == "" {
					value, ok := model.Lookup(row, f.Name)
					if !ok {
						continue
					}
					raw = strings.ToLower(model.Stringify(value))
				}
				if strings.Contains(raw, qt.Text) {
					score += contribution(qt.Text, raw)
				}
				continue
			}

			best := 0.0
			for _, rt := range rowToks {
				if strings.Contains(rt, qt.Text) {
					if c := contribution(qt.Text, rt); c > best {
						best = c
					}
				}
			}
			score += best
		}
	}
	return score
}

// contribution scores one matched needle against its haystack. The weight
// encodes the match kind and the needle length scales it, so longer matched
// tokens count more than mere presence; the closeness term breaks ties
// toward haystacks nearer the needle's length.
func contribution(needle, hay string) float64 {
	w := weightSubstring
	switch {
	case needle == hay:
		w = weightExact
	case strings.HasPrefix(hay, needle):
		w = weightPrefix
	}
	return w*float64(len(needle)) + float64(len(needle))/float64(len(hay))
}
