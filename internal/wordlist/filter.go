package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForAlphabet keeps words whose every character, compared
// case-insensitively, appears in alphabet.
func FilterForAlphabet(alphabet string) FilterFunc {
	allowed := make(map[rune]struct{}, len(alphabet))
	for _, r := range strings.ToLower(alphabet) {
		allowed[r] = struct{}{}
	}
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if _, ok := allowed[unicode.ToLower(r)]; !ok {
				return false
			}
		}
		return true
	}
}

// Filter returns the words accepted by keep. When nothing passes, the full
// list is returned unchanged.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), words...)
	}
	return out
}
