package ornament

// Thresholds are the tunable gate knobs. They are fixed for the lifetime
// of an Engine; tune between instances, not mid-conversation.
type Thresholds struct {
	// PastRelevance is the minimum Jaccard score for a past-moment link.
	PastRelevance float64
	// CollocRelevance is the minimum topical overlap for a collocation.
	CollocRelevance float64
	// ConfMin is the minimum confidence to ornament at all.
	ConfMin float64
	// ChanceColloc is the base probability of attempting a collocation,
	// scaled up or down by the current confidence.
	ChanceColloc float64
}

// DefaultThresholds returns the stock gate tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PastRelevance:   0.25,
		CollocRelevance: 0.20,
		ConfMin:         0.55,
		ChanceColloc:    0.35,
	}
}
