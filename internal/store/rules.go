package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// InteractionRule is a stored row from the interaction_rules table.
type InteractionRule struct {
	ID         int64
	RuleID     string
	Tactic     string
	Uses       int
	Payload    string // JSON
	LastUsedAt *int64
}

// SaveRule implements the rule-persistence half of ornament.TraceSink:
// upsert the rule's latest payload and usage bookkeeping.
func (db *DB) SaveRule(ruleID string, payload map[string]any) error {
	if ruleID == "" {
		return fmt.Errorf("save rule: empty rule id")
	}

	tactic := ""
	if t, ok := payload["tactic"].(string); ok {
		tactic = t
	}
	uses := 0
	switch u := payload["uses"].(type) {
	case int:
		uses = u
	case float64:
		uses = int(u)
	}

	data := ""
	if b, err := json.Marshal(payload); err == nil {
		data = string(b)
	}

	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO interaction_rules (rule_id, tactic, uses, payload, last_used_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(rule_id) DO UPDATE SET
			tactic = excluded.tactic,
			uses = excluded.uses,
			payload = excluded.payload,
			last_used_at = excluded.last_used_at
	`, ruleID, tactic, uses, data, now)
	if err != nil {
		return fmt.Errorf("save rule: %w", err)
	}
	return nil
}

// GetRule returns a rule by its rule_id, or nil when unknown.
func (db *DB) GetRule(ruleID string) (*InteractionRule, error) {
	var r InteractionRule
	err := db.QueryRow(`
		SELECT id, rule_id, COALESCE(tactic, ''), uses, COALESCE(payload, ''), last_used_at
		FROM interaction_rules WHERE rule_id = ?
	`, ruleID).Scan(&r.ID, &r.RuleID, &r.Tactic, &r.Uses, &r.Payload, &r.LastUsedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return &r, nil
}
