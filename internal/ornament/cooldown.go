package ornament

// Kind identifies an ornament family for cooldown tracking.
type Kind string

const (
	// KindPast is a callback to a recorded key moment.
	KindPast Kind = "past"
	// KindColloc is a favored phrase pairing from the lexicon.
	KindColloc Kind = "colloc"
)

const (
	// decayStep is subtracted from every suppression level on each render
	// call, so a freshly used kind (2.0) frees up after about 6 calls.
	decayStep = 0.34
	// cooldownTicks is the suppression level set when a kind is used.
	cooldownTicks = 2.0
)

// ledger tracks per-kind decaying suppression and the last snippet used.
// It is owned by one Engine and mutated without locking; the caller
// serializes render calls.
type ledger struct {
	level map[Kind]float64
	last  map[Kind]string
}

func newLedger() *ledger {
	return &ledger{
		level: map[Kind]float64{KindPast: 0, KindColloc: 0},
		last:  map[Kind]string{KindPast: "", KindColloc: ""},
	}
}

// decay cools every kind by decayStep, floored at 0.
func (l *ledger) decay() {
	for k, v := range l.level {
		v -= decayStep
		if v < 0 {
			v = 0
		}
		l.level[k] = v
	}
}

// ready reports whether kind k may carry snippet: the suppression level
// has fully decayed and the snippet is not an immediate repeat.
func (l *ledger) ready(k Kind, snippet string) bool {
	return l.level[k] <= 0 && snippet != l.last[k]
}

// use marks kind k as spent on snippet.
func (l *ledger) use(k Kind, snippet string) {
	l.level[k] = cooldownTicks
	l.last[k] = snippet
}
