package search

// Result is the subset of a Serper response that feeds prompt augmentation.
// It is produced and consumed within a single turn and never persisted.
// A failed search is represented by a Result with only Error set.
type Result struct {
	Organic        []OrganicEntry  `json:"organic,omitempty"`
	AnswerBox      *AnswerBox      `json:"answerBox,omitempty"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledgeGraph,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// OrganicEntry is a single organic search hit.
type OrganicEntry struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// AnswerBox is Serper's featured answer block, when present.
type AnswerBox struct {
	Title   string `json:"title"`
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
}

// KnowledgeGraph is Serper's knowledge panel block, when present.
type KnowledgeGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Failed returns true when the result represents a search failure.
func (r Result) Failed() bool {
	return r.Error != ""
}
