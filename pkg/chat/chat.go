package chat

// Speaker roles, named as the narration API names them.
const (
	RoleUser  = "user"  // the player, and the seeded scene instruction
	RoleModel = "model" // the narrator
)

// Turn is a single entry in the story conversation. Turns are immutable
// once appended to a transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Transcript is the ordered conversation history for one game session.
// It defines the context window sent to the narration service on every
// request. It only ever grows; turns are never edited or removed, and no
// trimming or summarization is applied.
//
// A Transcript is not safe for concurrent use; the owning session
// serializes access.
type Transcript struct {
	turns []Turn
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{turns: make([]Turn, 0)}
}

// Append adds one turn to the end of the transcript.
func (t *Transcript) Append(role, text string) {
	t.turns = append(t.turns, Turn{Role: role, Text: text})
}

// Turns returns a copy of the transcript in insertion order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// LastRole returns the role of the most recent turn, or the empty
// string for an empty transcript. After any sequence of submissions the
// last role is RoleUser exactly when the most recent narration call
// failed or is still pending.
func (t *Transcript) LastRole() string {
	if len(t.turns) == 0 {
		return ""
	}
	return t.turns[len(t.turns)-1].Role
}
