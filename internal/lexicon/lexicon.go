// Package lexicon supplies favored phrase pairings (collocations) that the
// ornament engine may offer as stylistic asides.
package lexicon

import (
	"math/rand"
	"sort"
)

// Lexicon samples zero-or-one phrase pairing. The novelty parameter in
// [0,1] is the probability of drawing from the least-used phrases instead
// of the whole pool, biasing toward occasionally-fresh choices.
type Lexicon interface {
	Sample(novelty float64) string
}

type entry struct {
	phrase string
	uses   int
}

// pick applies the shared novelty-biased draw over a usage-counted pool.
// Returns "" on an empty pool.
func pick(rng *rand.Rand, entries []entry, novelty float64) string {
	if len(entries) == 0 {
		return ""
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].uses < entries[j].uses
	})

	pool := entries
	if rng.Float64() < novelty {
		// Fresh half: the least-used phrases, at least one.
		half := (len(entries) + 1) / 2
		pool = entries[:half]
	}
	return pool[rng.Intn(len(pool))].phrase
}
