// Package ornament decides whether, and which, secondary embellishment may
// be appended to an already-generated reply: a callback to a past key
// moment, or a favored phrase pairing from the lexicon. At most one
// ornament per reply, gated by relevance, confidence, character budget,
// cooldowns, and a random attempt draw.
package ornament

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"flourish/internal/voice"
)

// Lexicon samples zero-or-one phrase pairing; the novelty parameter in
// [0,1] biases the draw toward less-used phrases. Satisfied by the
// lexicon package's implementations.
type Lexicon interface {
	Sample(novelty float64) string
}

const (
	// fallbackText stands in when semantics arrive without a base reply.
	fallbackText = "I'm answering with our shared history in mind."

	// defaultConfidence is the neutral fallback when no estimator is
	// reachable or the estimator fails.
	defaultConfidence = 0.6

	// collocNovelty is the fixed lexicon sampling bias: occasionally
	// fresh, mostly familiar.
	collocNovelty = 0.3

	// Ornament character budget: base allowance, bonus for users who like
	// long replies, penalty for a concise voice, floor below which no
	// ornament is attempted.
	baseBudget     = 160
	longBonus      = 80
	concisePenalty = 60
	budgetFloor    = 60

	pastMarker  = "\n\n↪ Related: "
	warmClosing = " (I'm around if you need more)"
	emojiMarker = "\U0001f642 "
)

// greetingPrefixes are checked (lowercased) before prepending a greeting.
var greetingPrefixes = []string{"hello", "good morning", "good evening"}

// Semantics is the payload produced by the base reply generator.
type Semantics struct {
	Text string
	Rule Rule // nil when no interaction rule is attached
}

// UserStyle carries the user's stated reply preferences. PrefersLong is
// tri-state: only an explicit false vetoes ornamentation.
type UserStyle struct {
	PrefersLong *bool
}

// RenderContext is the read-only per-call input.
type RenderContext struct {
	LastMessage string
	KeyMoments  []string // oldest first, most recent last
	Topics      []string
	UserStyle   UserStyle
}

// Engine is the ornament selection engine. One instance per conversation;
// cooldown state is mutated in place without locking, so concurrent calls
// must be serialized by the caller.
type Engine struct {
	voice      voice.Profile
	lex        Lexicon
	estimator  voice.ConfidenceEstimator
	sink       TraceSink
	questions  QuestionTracker
	thresholds Thresholds
	cool       *ledger
	rng        *rand.Rand
}

// New creates an Engine with default thresholds, a no-op trace sink, and
// no confidence estimator (neutral fallback applies).
func New(v voice.Profile, lex Lexicon) *Engine {
	return &Engine{
		voice:      v,
		lex:        lex,
		sink:       NopSink{},
		thresholds: DefaultThresholds(),
		cool:       newLedger(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetThresholds replaces the gate tuning. Call before the first render.
func (e *Engine) SetThresholds(t Thresholds) {
	e.thresholds = t
}

// SetTraceSink attaches an external memory for decision traces.
func (e *Engine) SetTraceSink(s TraceSink) {
	if s == nil {
		s = NopSink{}
	}
	e.sink = s
}

// SetConfidenceEstimator attaches the upstream policy's confidence source.
func (e *Engine) SetConfidenceEstimator(c voice.ConfidenceEstimator) {
	e.estimator = c
}

// SetQuestionTracker attaches the pending-question counter used in trace
// snapshots.
func (e *Engine) SetQuestionTracker(q QuestionTracker) {
	e.questions = q
}

// SetRand replaces the random source. Tests use a seeded source to make
// the collocation attempt draw deterministic.
func (e *Engine) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// Render returns the base text, voice-decorated, with at most one ornament
// appended. Ornamentation is a pure enhancement: any internal fault
// degrades to the plain decorated base text, never an error.
func (e *Engine) Render(sem Semantics, rc RenderContext) string {
	e.cool.decay()

	base := strings.TrimSpace(sem.Text)
	if base == "" {
		base = fallbackText
	}

	conf := e.confidence()
	budget := e.budgetChars(rc)
	directQuestion := strings.Contains(rc.LastMessage, "?")

	// Global short-circuit: low confidence, no room, or the user
	// explicitly wants short replies.
	if conf < e.thresholds.ConfMin || budget < budgetFloor || explicitlyShort(rc.UserStyle) {
		return e.decorate(base)
	}

	pastTxt, pastRel := pickPastMoment(rc.LastMessage, rc.KeyMoments)
	usePast := pastTxt != "" &&
		pastRel >= e.thresholds.PastRelevance &&
		e.cool.ready(KindPast, pastTxt) &&
		!directQuestion // never derail a direct question

	collocTxt := e.lex.Sample(collocNovelty)
	collocRel := collocationRelevance(collocTxt, rc.Topics)
	pTry := e.thresholds.ChanceColloc * (0.6 + 0.6*conf)
	useColloc := collocTxt != "" &&
		e.rng.Float64() < pTry &&
		collocRel >= e.thresholds.CollocRelevance &&
		e.cool.ready(KindColloc, collocTxt)

	out := e.decorate(base)

	// Priority to the past link. An accepted past link ends the turn; a
	// collocation never rides along with it.
	if usePast {
		snippet := pastMarker + pastTxt
		if utf8.RuneCountInString(snippet) <= budget {
			out += snippet
			e.cool.use(KindPast, pastTxt)
			log.Debug().Str("kind", string(KindPast)).Float64("relevance", pastRel).Msg("ornament appended")
			return out
		}
	}

	if useColloc {
		snippet := "\n\n(" + collocTxt + ")"
		if utf8.RuneCountInString(snippet) <= budget {
			out += snippet
			e.cool.use(KindColloc, collocTxt)
			log.Debug().Str("kind", string(KindColloc)).Float64("relevance", collocRel).Msg("ornament appended")
		}
	}

	e.recordDecision(sem, rc)
	return out
}

// confidence asks the estimator, falling back to neutral on any failure.
func (e *Engine) confidence() float64 {
	if e.estimator == nil {
		return defaultConfidence
	}
	c, err := e.estimator.Confidence()
	if err != nil {
		return defaultConfidence
	}
	return c
}

// budgetChars computes the ornament character allowance from the user's
// preferences and the voice's conciseness, clamped at 0.
func (e *Engine) budgetChars(rc RenderContext) int {
	budget := baseBudget
	if rc.UserStyle.PrefersLong != nil && *rc.UserStyle.PrefersLong {
		budget += longBonus
	}
	if e.voice.Style().Conciseness > 0.7 {
		budget -= concisePenalty
	}
	if budget < 0 {
		budget = 0
	}
	return budget
}

// decorate applies the voice's stylistic touches to the base text. The
// triggers are independent and may all fire. Ornaments are appended after
// decoration and are never decorated themselves.
func (e *Engine) decorate(text string) string {
	st := e.voice.Style()
	if st.Formality > 0.75 && !startsWithGreeting(text) {
		text = "Hello, " + text
	}
	if st.Warmth > 0.75 && !strings.HasSuffix(text, "!") {
		text += warmClosing
	}
	if st.Emoji > 0.6 {
		text = emojiMarker + text
	}
	return text
}

func startsWithGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, g := range greetingPrefixes {
		if strings.HasPrefix(lower, g) {
			return true
		}
	}
	return false
}

// explicitlyShort reports the hard veto: a stated false preference.
// Absence of the preference is not a veto.
func explicitlyShort(us UserStyle) bool {
	return us.PrefersLong != nil && !*us.PrefersLong
}
