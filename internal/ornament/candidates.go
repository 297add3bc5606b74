package ornament

// pastWindow bounds how far back the key-moment scan reaches.
const pastWindow = 8

// pickPastMoment scans the last pastWindow key moments and returns the one
// with the highest Jaccard similarity to the user's message, with its score.
// The scan runs oldest-first, so on an exact tie the earliest candidate wins.
// Returns ("", 0) when there is no scorable candidate.
func pickPastMoment(userMsg string, moments []string) (string, float64) {
	if len(moments) == 0 {
		return "", 0
	}
	if len(moments) > pastWindow {
		moments = moments[len(moments)-pastWindow:]
	}

	utoks := tokenize(userMsg)
	best, score := "", 0.0
	for _, m := range moments {
		mtoks := tokenize(m)
		if len(mtoks) == 0 {
			continue
		}
		if j := jaccard(utoks, mtoks); j > score {
			best, score = m, j
		}
	}
	return best, score
}

// collocationRelevance scores a lexicon phrase against the current topic
// set: the fraction of the phrase's own tokens that appear as topics. The
// denominator is the phrase's token count, not the union.
func collocationRelevance(candidate string, topics []string) float64 {
	toks := tokenize(candidate)
	topicSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		topicSet[t] = true
	}

	inter := 0
	for t := range toks {
		if topicSet[t] {
			inter++
		}
	}
	denom := len(toks)
	if denom < 1 {
		denom = 1
	}
	return float64(inter) / float64(denom)
}
