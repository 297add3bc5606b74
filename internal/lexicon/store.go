package lexicon

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"flourish/internal/store"
)

// Store is a lexicon backed by the SQLite collocation table, so usage
// counts survive restarts. Sampling degrades to "" when the store is
// unreachable — the engine treats that as no candidate, not a failure.
type Store struct {
	db  *store.DB
	rng *rand.Rand
}

// NewStore creates a lexicon over the given database.
func NewStore(db *store.DB) *Store {
	return &Store{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample draws one stored phrase with the shared novelty bias and bumps
// its persisted usage count.
func (s *Store) Sample(novelty float64) string {
	collocs, err := s.db.ListCollocations()
	if err != nil {
		log.Debug().Err(err).Msg("lexicon unavailable")
		return ""
	}

	entries := make([]entry, 0, len(collocs))
	for _, c := range collocs {
		entries = append(entries, entry{phrase: c.Phrase, uses: c.Uses})
	}

	choice := pick(s.rng, entries, novelty)
	if choice != "" {
		if err := s.db.TouchCollocation(choice); err != nil {
			log.Debug().Err(err).Msg("collocation use not recorded")
		}
	}
	return choice
}
