package history

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryAppendRecent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, moment := range []string{"first", "second", "third"} {
		if err := m.Append(ctx, "conv-1", moment); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := m.Recent(ctx, "conv-1", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0] != "second" || got[1] != "third" {
		t.Errorf("Recent = %v, want the last two, oldest first", got)
	}

	// n <= 0 returns the whole window.
	got, _ = m.Recent(ctx, "conv-1", 0)
	if len(got) != 3 {
		t.Errorf("Recent(0) = %d moments, want 3", len(got))
	}
}

func TestMemoryCapsWindow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < maxMoments+10; i++ {
		m.Append(ctx, "conv-1", fmt.Sprintf("moment %d", i))
	}

	got, _ := m.Recent(ctx, "conv-1", 0)
	if len(got) != maxMoments {
		t.Fatalf("window = %d, want %d", len(got), maxMoments)
	}
	if got[0] != "moment 10" {
		t.Errorf("oldest kept = %q, want moment 10", got[0])
	}
}

func TestMemoryConversationsIsolated(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Append(ctx, "conv-1", "about the garden")
	m.Append(ctx, "conv-2", "about the move")

	got, _ := m.Recent(ctx, "conv-1", 0)
	if len(got) != 1 || got[0] != "about the garden" {
		t.Errorf("conv-1 window = %v", got)
	}
}

func TestMemoryIgnoresEmptyMoment(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Append(ctx, "conv-1", "")
	got, _ := m.Recent(ctx, "conv-1", 0)
	if len(got) != 0 {
		t.Errorf("window = %v, want empty", got)
	}
}
