package ornament

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"basic", "The garden project", []string{"the", "garden", "project"}},
		{"short tokens dropped", "I am ok at Go", []string{}},
		{"punctuation splits", "move, move! re-plan", []string{"move", "plan"}},
		{"accents kept", "Café déjà vu", []string{"café", "déjà"}},
		{"digits split", "abc123def", []string{"abc", "def"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("tokenize(%q) missing %q", tt.in, w)
				}
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	set := func(words ...string) map[string]bool {
		m := make(map[string]bool)
		for _, w := range words {
			m[w] = true
		}
		return m
	}

	tests := []struct {
		name string
		a, b map[string]bool
		want float64
	}{
		{"identical", set("garden", "plan"), set("garden", "plan"), 1.0},
		{"disjoint", set("garden"), set("plan"), 0.0},
		{"partial", set("garden", "plan"), set("garden", "move", "plan"), 2.0 / 3.0},
		{"both empty", set(), set(), 0.0},
		{"one empty", set("garden"), set(), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}
