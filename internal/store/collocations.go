package store

import (
	"fmt"
	"time"
)

// Collocation is a stored phrase pairing with its usage count.
type Collocation struct {
	ID      int64
	Phrase  string
	Uses    int
	AddedAt int64
}

// AddCollocation stores a phrase. Blank phrases and duplicates are
// silently ignored so config seeding stays idempotent.
func (db *DB) AddCollocation(phrase string) error {
	if phrase == "" {
		return nil
	}
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO collocations (phrase, uses, added_at)
		VALUES (?, 0, ?)
		ON CONFLICT(phrase) DO NOTHING
	`, phrase, now)
	if err != nil {
		return fmt.Errorf("add collocation: %w", err)
	}
	return nil
}

// ListCollocations returns all stored phrases, least used first.
func (db *DB) ListCollocations() ([]Collocation, error) {
	rows, err := db.Query(`
		SELECT id, phrase, uses, added_at FROM collocations ORDER BY uses, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list collocations: %w", err)
	}
	defer rows.Close()

	var collocs []Collocation
	for rows.Next() {
		var c Collocation
		if err := rows.Scan(&c.ID, &c.Phrase, &c.Uses, &c.AddedAt); err != nil {
			return nil, fmt.Errorf("scan collocation: %w", err)
		}
		collocs = append(collocs, c)
	}
	return collocs, rows.Err()
}

// TouchCollocation increments a phrase's usage count.
func (db *DB) TouchCollocation(phrase string) error {
	_, err := db.Exec(`UPDATE collocations SET uses = uses + 1 WHERE phrase = ?`, phrase)
	if err != nil {
		return fmt.Errorf("touch collocation: %w", err)
	}
	return nil
}
