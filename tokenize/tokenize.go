// Package tokenize normalizes field values and search queries into tokens.
//
// The default tokenizer lowercases, maps punctuation to whitespace and splits
// on whitespace. Query parsing additionally supports a quoted-phrase
// convention: a double-quoted token is matched as a literal substring of the
// raw value instead of per-token.
package tokenize

import (
	"strings"
	"unicode"
)

// Tokenizer splits a field value into an ordered list of normalized tokens.
// Implementations must be pure: same input, same output.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Default is the standard tokenizer: lowercase, punctuation to whitespace,
// split on whitespace.
type Default struct{}

// Tokenize implements Tokenizer.
func (Default) Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// QueryToken is one unit of a parsed search query. A Literal token came from
// a quoted phrase and matches as a raw substring rather than per-token.
type QueryToken struct {
	Text    string
	Literal bool
}

// ParseQuery splits a query into tokens using t for the unquoted parts and
// honoring double-quoted phrases. Quoted phrases are lowercased but not
// otherwise normalized, so punctuation inside quotes is significant.
//
// An unterminated quote treats the remainder of the query as one literal.
// A nil tokenizer falls back to Default.
func ParseQuery(query string, t Tokenizer) []QueryToken {
	if t == nil {
		t = Default{}
	}

	var out []QueryToken
	rest := query
	for rest != "" {
		open := strings.IndexByte(rest, '"')
		if open < 0 {
			out = appendPlain(out, rest, t)
			break
		}
		out = appendPlain(out, rest[:open], t)
		rest = rest[open+1:]

		end := strings.IndexByte(rest, '"')
		var phrase string
		if end < 0 {
			phrase, rest = rest, ""
		} else {
			phrase, rest = rest[:end], rest[end+1:]
		}
		if phrase = strings.ToLower(strings.TrimSpace(phrase)); phrase != "" {
			out = append(out, QueryToken{Text: phrase, Literal: true})
		}
	}
	return out
}

func appendPlain(out []QueryToken, s string, t Tokenizer) []QueryToken {
	for _, tok := range t.Tokenize(s) {
		out = append(out, QueryToken{Text: tok})
	}
	return out
}
