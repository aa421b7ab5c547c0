package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abiggs624/cavern/internal/services"
	"github.com/abiggs624/cavern/pkg/chat"
	"github.com/abiggs624/cavern/pkg/prompts"
	"github.com/abiggs624/cavern/pkg/textfilter"
)

// DisplayMode selects which of the two views is visible. Exactly one is
// active at any time.
type DisplayMode int

const (
	ModeNarration DisplayMode = iota
	ModeInventory
)

func (m DisplayMode) String() string {
	switch m {
	case ModeNarration:
		return "narration"
	case ModeInventory:
		return "inventory"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyCommand is returned for input that is empty after
	// trimming. Callers treat it as a no-op, not a failure.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrPending is returned when a narration call is already in
	// flight. The UI disables input for the duration, so this is a
	// guard rail rather than an expected path.
	ErrPending = errors.New("narration request already in flight")

	errAlreadyStarted = errors.New("session already started")
)

// DefaultInventory is what the player carries at the start of every
// session. Nothing mutates it at runtime in this version.
var DefaultInventory = []string{
	"a stub of candle",
	"a box of damp matches",
	"a coil of old rope",
}

// Session is the game session controller. It owns the conversation
// transcript, the static inventory, the display mode and the pending
// flag, and mediates every call to the narration service.
//
// Narrate calls run inside bubbletea command goroutines while the UI
// goroutine reads state, so all fields are mutex-guarded. The mutex is
// not held across the remote call; at most one call is in flight at a
// time because input stays disabled until the reply lands.
type Session struct {
	id       uuid.UUID
	narrator services.NarratorService
	logger   *slog.Logger
	filter   *textfilter.ContentFilter

	mu         sync.Mutex
	transcript *chat.Transcript
	inventory  []string
	mode       DisplayMode
	pending    bool
	started    bool
}

// New creates a session controller. The content rating decides whether
// narration passes through the profanity softener before rendering.
func New(narrator services.NarratorService, inventory []string, rating string, logger *slog.Logger) *Session {
	s := &Session{
		id:         uuid.New(),
		narrator:   narrator,
		logger:     logger,
		transcript: chat.NewTranscript(),
		inventory:  inventory,
		mode:       ModeNarration,
	}
	if textfilter.ShouldFilter(rating) {
		s.filter = textfilter.NewContentFilter()
	}
	return s
}

// ID returns the unique identifier of this session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start runs once at startup. It seeds the transcript with the fixed
// scene-setting instruction as the first user turn, requests the
// opening narration with the full history, and on success appends the
// result as a model turn and returns it. On failure no model turn is
// appended; the transcript is left ending in the lone instruction turn
// and play may still be attempted against it.
func (s *Session) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return "", errAlreadyStarted
	}
	s.started = true
	s.pending = true
	s.transcript.Append(chat.RoleUser, prompts.SceneInstruction)
	history := s.transcript.Turns()
	s.mu.Unlock()

	text, err := s.narrator.Narrate(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		s.logger.Error("opening narration failed", "session_id", s.id.String(), "error", err)
		return "", err
	}

	text = s.soften(text)
	s.transcript.Append(chat.RoleModel, text)
	s.logger.Info("session started", "session_id", s.id.String())
	return text, nil
}

// Submit handles one player command. The command is appended as a user
// turn before the remote call; on success the returned narration is
// appended as a model turn and returned. On failure nothing further is
// appended, leaving the transcript ending in the user turn.
func (s *Session) Submit(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyCommand
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return "", ErrPending
	}
	s.pending = true
	s.transcript.Append(chat.RoleUser, input)
	history := s.transcript.Turns()
	s.mu.Unlock()

	text, err := s.narrator.Narrate(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		s.logger.Error("narration failed", "session_id", s.id.String(), "turns", s.transcript.Len(), "error", err)
		return "", err
	}

	text = s.soften(text)
	s.transcript.Append(chat.RoleModel, text)
	s.logger.Debug("turn completed", "session_id", s.id.String(), "turns", s.transcript.Len())
	return text, nil
}

// ToggleMode flips between the narration and inventory views and
// returns the new mode.
func (s *Session) ToggleMode() DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeNarration {
		s.mode = ModeInventory
	} else {
		s.mode = ModeNarration
	}
	return s.mode
}

// Mode returns the currently visible display mode.
func (s *Session) Mode() DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Inventory returns a copy of the item list, re-derived from current
// state on every call so the view never caches a stale list.
func (s *Session) Inventory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// Pending reports whether a narration call is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// History returns a copy of the conversation transcript.
func (s *Session) History() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Turns()
}

func (s *Session) soften(text string) string {
	if s.filter == nil {
		return text
	}
	return s.filter.Filter(text)
}
