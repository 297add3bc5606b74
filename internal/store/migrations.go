package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "decision_traces: which rule/tactic produced an ornament decision",
		SQL: `
CREATE TABLE decision_traces (
    id          TEXT PRIMARY KEY,
    rule_id     TEXT NOT NULL,
    tactic      TEXT,
    snapshot    TEXT,
    created_at  INTEGER NOT NULL
);

CREATE INDEX idx_traces_rule    ON decision_traces(rule_id);
CREATE INDEX idx_traces_created ON decision_traces(created_at DESC);
`,
	},
	{
		Version:     2,
		Description: "interaction_rules: per-rule usage bookkeeping",
		SQL: `
CREATE TABLE interaction_rules (
    id           INTEGER PRIMARY KEY,
    rule_id      TEXT NOT NULL UNIQUE,
    tactic       TEXT,
    uses         INTEGER NOT NULL DEFAULT 0,
    payload      TEXT,
    last_used_at INTEGER
);
`,
	},
	{
		Version:     3,
		Description: "collocations: favored phrase pairings for the lexicon",
		SQL: `
CREATE TABLE collocations (
    id        INTEGER PRIMARY KEY,
    phrase    TEXT NOT NULL UNIQUE,
    uses      INTEGER NOT NULL DEFAULT 0,
    added_at  INTEGER NOT NULL
);

CREATE INDEX idx_colloc_uses ON collocations(uses);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
