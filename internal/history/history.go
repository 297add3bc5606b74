// Package history keeps the bounded recent-history window of key moments
// per conversation, feeding the ornament engine's past-link candidates.
package history

import (
	"context"
	"sync"
)

// maxMoments caps the stored window per conversation. The engine only
// scans the last 8; the extra headroom absorbs bursts between renders.
const maxMoments = 50

// Store appends and reads key moments for a conversation, oldest first.
type Store interface {
	Append(ctx context.Context, convID, moment string) error
	Recent(ctx context.Context, convID string, n int) ([]string, error)
}

// Memory is an in-process Store, used in tests and when no Redis is
// configured.
type Memory struct {
	mu      sync.Mutex
	moments map[string][]string
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{moments: make(map[string][]string)}
}

// Append adds a moment to the conversation window, dropping the oldest
// entries past the cap.
func (m *Memory) Append(_ context.Context, convID, moment string) error {
	if moment == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	w := append(m.moments[convID], moment)
	if len(w) > maxMoments {
		w = w[len(w)-maxMoments:]
	}
	m.moments[convID] = w
	return nil
}

// Recent returns up to n moments, oldest first.
func (m *Memory) Recent(_ context.Context, convID string, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.moments[convID]
	if n > 0 && len(w) > n {
		w = w[len(w)-n:]
	}
	out := make([]string, len(w))
	copy(out, w)
	return out, nil
}
