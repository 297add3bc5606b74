package ornament

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Trace records which interaction rule and tactic were in play when a
// reply was rendered, for downstream learning.
type Trace struct {
	RuleID   string
	Tactic   string
	Snapshot map[string]any
	At       time.Time
}

// TraceSink receives best-effort decision traces. Implementations may be
// transiently unavailable; errors are logged and dropped, never retried.
type TraceSink interface {
	RecordTrace(t Trace) error
	SaveRule(ruleID string, payload map[string]any) error
}

// NopSink discards everything. It is the default sink for engines that
// have no external memory attached.
type NopSink struct{}

func (NopSink) RecordTrace(Trace) error               { return nil }
func (NopSink) SaveRule(string, map[string]any) error { return nil }

// QuestionTracker reports how many of the user's questions are still
// awaiting an answer. Optional; absent means the snapshot records 0.
type QuestionTracker interface {
	PendingQuestions() int
}

// Rule is an interaction rule attached to a reply's semantics. A nil Rule
// means no rule; a non-nil Rule with an empty ID is ignored.
type Rule interface {
	ID() string
	Tactic() string
	// Payload is the serialized form persisted after a use is registered.
	Payload() map[string]any
	// RegisterUse bumps the rule's own usage bookkeeping.
	RegisterUse()
}

// BasicRule is the plain rule-with-id variant, used by the HTTP layer and
// anywhere a rule arrives as data rather than behavior.
type BasicRule struct {
	RuleID     string
	RuleTactic string
	Uses       int
}

func (r *BasicRule) ID() string     { return r.RuleID }
func (r *BasicRule) Tactic() string { return r.RuleTactic }

func (r *BasicRule) Payload() map[string]any {
	return map[string]any{
		"id":     r.RuleID,
		"tactic": r.RuleTactic,
		"uses":   r.Uses,
	}
}

func (r *BasicRule) RegisterUse() { r.Uses++ }

// recordDecision writes a decision trace and registers the rule use.
// Every failure in here is absorbed: the rendered reply must never depend
// on the sink being reachable.
func (e *Engine) recordDecision(sem Semantics, rc RenderContext) {
	defer func() {
		// Sink and rule implementations are external; a panic there must
		// not take down the render.
		if r := recover(); r != nil {
			log.Debug().Any("panic", r).Msg("decision trace dropped")
		}
	}()

	if sem.Rule == nil || sem.Rule.ID() == "" {
		return
	}

	pending := 0
	if e.questions != nil {
		pending = e.questions.PendingQuestions()
	}

	t := Trace{
		RuleID: sem.Rule.ID(),
		Tactic: sem.Rule.Tactic(),
		Snapshot: map[string]any{
			"last_message":            rc.LastMessage,
			"topics":                  rc.Topics,
			"key_moments":             len(rc.KeyMoments),
			"pending_questions_count": pending,
		},
		At: time.Now(),
	}
	if err := e.sink.RecordTrace(t); err != nil {
		log.Debug().Err(err).Str("rule", t.RuleID).Msg("decision trace dropped")
		return
	}

	sem.Rule.RegisterUse()
	if payload := sem.Rule.Payload(); payload != nil {
		if err := e.sink.SaveRule(sem.Rule.ID(), payload); err != nil {
			log.Debug().Err(err).Str("rule", t.RuleID).Msg("rule payload not persisted")
		}
	}
}
