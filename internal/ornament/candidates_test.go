package ornament

import (
	"fmt"
	"testing"
)

func TestPickPastMoment(t *testing.T) {
	t.Run("no moments", func(t *testing.T) {
		best, score := pickPastMoment("anything at all", nil)
		if best != "" || score != 0 {
			t.Errorf("got (%q, %v), want empty", best, score)
		}
	})

	t.Run("best overlap wins", func(t *testing.T) {
		moments := []string{
			"we compared sqlite drivers",
			"you were stressed about the move",
		}
		best, score := pickPastMoment("still stressed about the move", moments)
		if best != moments[1] {
			t.Errorf("best = %q, want %q", best, moments[1])
		}
		if score < 0.25 {
			t.Errorf("score = %v, want >= 0.25", score)
		}
	})

	t.Run("ties keep the earliest", func(t *testing.T) {
		// Identical moments score identically; the ascending scan keeps
		// the first maximum it sees.
		moments := []string{
			"planning the garden layout",
			"planning the garden layout",
		}
		best, _ := pickPastMoment("garden layout planning", moments)
		if best != moments[0] {
			t.Errorf("best = %q, want first of the tied pair", best)
		}
	})

	t.Run("scan window is the last 8", func(t *testing.T) {
		moments := []string{"the only garden discussion we had"}
		for i := 0; i < 8; i++ {
			moments = append(moments, fmt.Sprintf("unrelated filler number %d entirely", i))
		}
		best, score := pickPastMoment("about the garden discussion", moments)
		if best != "" || score != 0 {
			t.Errorf("got (%q, %v); moment outside the window must not match", best, score)
		}
	})

	t.Run("untokenizable moments skipped", func(t *testing.T) {
		best, score := pickPastMoment("garden plans", []string{"!!", "a b", "garden plans"})
		if best != "garden plans" {
			t.Errorf("best = %q, want %q (score %v)", best, "garden plans", score)
		}
	})
}

func TestCollocationRelevance(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		topics    []string
		want      float64
	}{
		{"fully anchored", "garden tools", []string{"garden", "tools"}, 1.0},
		{"half anchored", "garden weather", []string{"garden"}, 0.5},
		{"unanchored", "come rain or shine", []string{"garden"}, 0.0},
		{"empty candidate", "", []string{"garden"}, 0.0},
		{"no topics", "garden tools", nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collocationRelevance(tt.candidate, tt.topics); got != tt.want {
				t.Errorf("collocationRelevance = %v, want %v", got, tt.want)
			}
		})
	}
}
