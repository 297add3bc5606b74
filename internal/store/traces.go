package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"flourish/internal/ornament"
)

// DecisionTrace is a stored row from the decision_traces table.
type DecisionTrace struct {
	ID        string
	RuleID    string
	Tactic    string
	Snapshot  string // JSON
	CreatedAt int64
}

// RecordTrace implements ornament.TraceSink. The snapshot is stored as
// JSON; a snapshot that fails to marshal is stored empty rather than
// failing the write.
func (db *DB) RecordTrace(t ornament.Trace) error {
	snapshot := ""
	if data, err := json.Marshal(t.Snapshot); err == nil {
		snapshot = string(data)
	}

	_, err := db.Exec(`
		INSERT INTO decision_traces (id, rule_id, tactic, snapshot, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), t.RuleID, t.Tactic, snapshot, t.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("record trace: %w", err)
	}
	return nil
}

// RecentTraces returns the most recent decision traces, newest first.
func (db *DB) RecentTraces(limit int) ([]DecisionTrace, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, rule_id, COALESCE(tactic, ''), COALESCE(snapshot, ''), created_at
		FROM decision_traces ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent traces: %w", err)
	}
	defer rows.Close()

	var traces []DecisionTrace
	for rows.Next() {
		var t DecisionTrace
		if err := rows.Scan(&t.ID, &t.RuleID, &t.Tactic, &t.Snapshot, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		traces = append(traces, t)
	}
	return traces, rows.Err()
}

// TraceCount returns the number of stored decision traces.
func (db *DB) TraceCount() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM decision_traces`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count traces: %w", err)
	}
	return count, nil
}
