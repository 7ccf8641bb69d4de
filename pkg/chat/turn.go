// Package chat holds the conversation session state and the per-turn
// orchestration that ties search augmentation, prompt assembly, and LLM
// generation together.
package chat

// Display history roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Model context roles, matching the Gemini conversation format.
const (
	ModelRoleUser  = "user"
	ModelRoleModel = "model"
)

// Turn is a single display-history entry. Immutable once created.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ModelTurn is a single model-context entry, the shape resent to the LLM as
// conversation history. One (user, model) pair is appended per completed
// exchange.
type ModelTurn struct {
	Role  string   `json:"role"`
	Parts []string `json:"parts"`
}

// Text returns the concatenated parts of the turn.
func (t ModelTurn) Text() string {
	switch len(t.Parts) {
	case 0:
		return ""
	case 1:
		return t.Parts[0]
	}

	var out string
	for i, p := range t.Parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
