package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "lowercases", in: "Hello World", want: []string{"hello", "world"}},
		{name: "punctuation to whitespace", in: "foo-bar, baz!", want: []string{"foo", "bar", "baz"}},
		{name: "digits kept", in: "v1.2", want: []string{"v1", "2"}},
		{name: "empty", in: "", want: nil},
		{name: "only punctuation", in: "--- !!!", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default{}.Tokenize(tt.in))
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Run("PlainTokens", func(t *testing.T) {
		got := ParseQuery("Hello World", nil)
		assert.Equal(t, []QueryToken{{Text: "hello"}, {Text: "world"}}, got)
	})

	t.Run("QuotedPhraseIsLiteral", func(t *testing.T) {
		got := ParseQuery(`alpha "Beta Gamma" delta`, nil)
		assert.Equal(t, []QueryToken{
			{Text: "alpha"},
			{Text: "beta gamma", Literal: true},
			{Text: "delta"},
		}, got)
	})

	t.Run("PunctuationInsideQuotesSignificant", func(t *testing.T) {
		got := ParseQuery(`"foo-bar"`, nil)
		assert.Equal(t, []QueryToken{{Text: "foo-bar", Literal: true}}, got)
	})

	t.Run("UnterminatedQuote", func(t *testing.T) {
		got := ParseQuery(`alpha "beta gamma`, nil)
		assert.Equal(t, []QueryToken{
			{Text: "alpha"},
			{Text: "beta gamma", Literal: true},
		}, got)
	})

	t.Run("EmptyQuotes", func(t *testing.T) {
		got := ParseQuery(`"" alpha`, nil)
		assert.Equal(t, []QueryToken{{Text: "alpha"}}, got)
	})
}
