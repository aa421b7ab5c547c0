package services

import (
	"context"

	"github.com/abiggs624/cavern/pkg/chat"
)

// NarratorService defines the interface for the remote narration service.
type NarratorService interface {
	// Narrate sends the full conversation history and returns the next
	// piece of narration. Transport failures, non-success statuses and
	// malformed responses are all reported as a plain error; callers do
	// not distinguish between them.
	Narrate(ctx context.Context, history []chat.Turn) (string, error)
}
