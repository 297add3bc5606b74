package ornament

import (
	"strings"
	"unicode"
)

// minTokenLen is the minimum token length in runes. Shorter runs carry
// almost no topical signal and mostly add noise to the overlap scores.
const minTokenLen = 3

// tokenize splits text into a set of lowercase alphabetic tokens of
// minTokenLen runes or more. Any non-letter rune is a separator, so
// accented characters survive intact.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	var run []rune
	flush := func() {
		if len(run) >= minTokenLen {
			tokens[string(run)] = true
		}
		run = run[:0]
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// jaccard returns the Jaccard similarity of two token sets: intersection
// over union, with the denominator floored at 1 so two empty sets score
// 0 rather than dividing by zero.
func jaccard(a, b map[string]bool) float64 {
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union < 1 {
		union = 1
	}
	return float64(inter) / float64(union)
}
