package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits text into terms for vectorization.
type Tokenizer interface {
	Tokenize(text string) []string
}

type wordTokenizer struct {
	minRunes int
}

// NewTokenizer returns the default tokenizer: lowercase runs of letters,
// marks, digits and underscores that are at least two runes long.
func NewTokenizer() Tokenizer {
	return &wordTokenizer{minRunes: 2}
}

// Tokenize implements Tokenizer.
func (t *wordTokenizer) Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= t.minRunes {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
