package lexicon

import (
	"math/rand"
	"time"
)

// Memory is an in-memory lexicon seeded with a fixed phrase list. Usage
// counts live only as long as the instance.
type Memory struct {
	phrases []string
	uses    map[string]int
	rng     *rand.Rand
}

// NewMemory creates a Memory lexicon over the given phrases.
func NewMemory(phrases []string) *Memory {
	m := &Memory{
		uses: make(map[string]int, len(phrases)),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, p := range phrases {
		m.Add(p)
	}
	return m
}

// Add registers a phrase, ignoring blanks and duplicates.
func (m *Memory) Add(phrase string) {
	if phrase == "" {
		return
	}
	if _, ok := m.uses[phrase]; ok {
		return
	}
	m.phrases = append(m.phrases, phrase)
	m.uses[phrase] = 0
}

// Sample draws one phrase with the shared novelty bias and bumps its
// usage count. Returns "" when the lexicon is empty.
func (m *Memory) Sample(novelty float64) string {
	entries := make([]entry, 0, len(m.phrases))
	for _, p := range m.phrases {
		entries = append(entries, entry{phrase: p, uses: m.uses[p]})
	}
	choice := pick(m.rng, entries, novelty)
	if choice != "" {
		m.uses[choice]++
	}
	return choice
}
