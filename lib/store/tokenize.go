package store

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lower-cased words. Every rune that is neither a letter
// nor a digit separates words. Duplicates are kept in order of appearance.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeWord converts a search query into the single index term it matches.
// ok is false if the query does not consist of exactly one word.
func NormalizeWord(word string) (term string, ok bool) {
	tokens := Tokenize(word)
	if len(tokens) != 1 {
		return "", false
	}
	return tokens[0], true
}
