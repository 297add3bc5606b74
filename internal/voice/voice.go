// Package voice models the style profile a reply is rendered with.
package voice

// Style is a snapshot of the voice's stylistic traits, each in [0,1].
type Style struct {
	Formality   float64
	Warmth      float64
	Emoji       float64
	Conciseness float64
}

// Profile supplies the style snapshot used for decoration and budgets.
type Profile interface {
	Style() Style
}

// Fixed is a Profile with constant traits, typically built from config.
type Fixed struct {
	Traits Style
}

func (f Fixed) Style() Style { return f.Traits }

// ConfidenceEstimator exposes the upstream policy's confidence in the
// current reply. Implementations may fail; callers fall back to a neutral
// default rather than surfacing the error.
type ConfidenceEstimator interface {
	Confidence() (float64, error)
}

// Static is a ConfidenceEstimator that always reports the same value.
type Static float64

func (s Static) Confidence() (float64, error) { return float64(s), nil }
