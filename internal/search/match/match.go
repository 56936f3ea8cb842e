// Package match provides the diacritic-insensitive text matching used to
// filter and rank search results locally.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder strips combining diacritical marks after canonical decomposition,
// so "å" folds to "a" and "é" to "e".
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritics. It is applied identically to
// searchable text and to query terms, so comparisons stay symmetric.
func Fold(s string) string {
	folded, _, err := transform.String(folder, strings.ToLower(s))
	if err != nil {
		// The chain cannot fail on valid UTF-8; fall back to the
		// lowercased input for anything pathological.
		return strings.ToLower(s)
	}
	return folded
}

// HasPrefixWord reports whether term is a prefix of any whitespace-delimited
// word in text. Both sides must already be folded.
func HasPrefixWord(text, term string) bool {
	if term == "" {
		return true
	}
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return false
}

// Contains reports whether needle appears anywhere in haystack. Both sides
// must already be folded.
func Contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// AllPrefixWords reports whether every term is a prefix of some word in
// text. An empty term list matches everything.
func AllPrefixWords(text string, terms []string) bool {
	for _, term := range terms {
		if !HasPrefixWord(text, Fold(term)) {
			return false
		}
	}
	return true
}
