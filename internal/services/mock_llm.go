package services

import (
	"context"
	"sync"

	"github.com/abiggs624/cavern/pkg/chat"
)

// MockNarrator is a mock implementation of NarratorService for testing
type MockNarrator struct {
	NarrateFunc func(ctx context.Context, history []chat.Turn) (string, error)

	// Track calls for testing
	NarrateCalls []NarrateCall

	mu sync.Mutex // protects all fields above
}

type NarrateCall struct {
	History []chat.Turn
}

// Ensure MockNarrator implements NarratorService
var _ NarratorService = (*MockNarrator)(nil)

// NewMockNarrator creates a new mock narration service
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{
		NarrateCalls: make([]NarrateCall, 0),
	}
}

// Narrate records the call and delegates to NarrateFunc when set.
func (m *MockNarrator) Narrate(ctx context.Context, history []chat.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]chat.Turn, len(history))
	copy(recorded, history)
	m.NarrateCalls = append(m.NarrateCalls, NarrateCall{History: recorded})

	if m.NarrateFunc != nil {
		return m.NarrateFunc(ctx, history)
	}

	// Default behavior - canned narration
	return "The cave is silent.", nil
}

// CallCount returns the number of Narrate invocations so far.
func (m *MockNarrator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NarrateCalls)
}
