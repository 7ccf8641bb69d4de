package chat

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mediassistco/mediassist/pkg/prompt"
)

// Config holds the per-session settings the UI can toggle.
type Config struct {
	SearchEnabled bool `json:"search_enabled"`
}

// Session owns the ordered display history and the ordered model-context
// history for one conversation. Both grow monotonically until Clear.
//
// The two histories stay semantically aligned: every display (user, assistant)
// pair corresponds to exactly one model-context (user, model) pair, except the
// static greeting, which exists only in display history, and error replies,
// which occupy a display slot but never enter the model context. Replaying the
// model context therefore reconstructs exactly the history the LLM provider
// has already seen, in order.
//
// A mutex guards both histories; a separate turn lock serializes whole turns
// so a concurrent server runs at most one turn per session at a time.
type Session struct {
	id string

	turnMu sync.Mutex

	mu           sync.Mutex
	display      []Turn
	modelContext []ModelTurn
	cfg          Config
}

// NewSession creates a session seeded with the greeting-only display state.
func NewSession() *Session {
	return &Session{
		id:      uuid.NewString(),
		display: []Turn{{Role: RoleAssistant, Text: prompt.Greeting}},
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the session's current settings.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig replaces the session's settings.
func (s *Session) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Display returns a copy of the display history.
func (s *Session) Display() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.display)
}

// ModelContext returns a copy of the model-context history.
func (s *Session) ModelContext() []ModelTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.modelContext)
}

// AppendUser appends a user turn to the display history.
func (s *Session) AppendUser(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = append(s.display, Turn{Role: RoleUser, Text: text})
}

// AppendAssistant appends an assistant turn to the display history without
// touching the model context. Used for the replies that the model must not
// see again, i.e. error strings.
func (s *Session) AppendAssistant(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.display = append(s.display, Turn{Role: RoleAssistant, Text: text})
}

// CompleteExchange records a successful exchange: the (user, model) pair is
// appended to the model context and the reply to the display history. The
// user's display turn was already appended at the start of the turn.
func (s *Session) CompleteExchange(userQuery, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modelContext = append(s.modelContext,
		ModelTurn{Role: ModelRoleUser, Parts: []string{userQuery}},
		ModelTurn{Role: ModelRoleModel, Parts: []string{reply}},
	)
	s.display = append(s.display, Turn{Role: RoleAssistant, Text: reply})
}

// Clear empties both histories and restores the greeting-only display state.
// Settings are left untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display = []Turn{{Role: RoleAssistant, Text: prompt.Greeting}}
	s.modelContext = nil
}

// BeginTurn blocks until no other turn is in flight on this session.
// Every BeginTurn must be paired with EndTurn.
func (s *Session) BeginTurn() {
	s.turnMu.Lock()
}

// EndTurn releases the turn lock acquired by BeginTurn.
func (s *Session) EndTurn() {
	s.turnMu.Unlock()
}
