package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mediassistco/mediassist/pkg/prompt"
	"github.com/mediassistco/mediassist/pkg/search"
	"github.com/mediassistco/mediassist/pkg/utils"
)

// Generator produces one reply from the accumulated model context plus the
// current prompt text.
type Generator interface {
	Generate(ctx context.Context, history []ModelTurn, promptText string) (string, error)
}

// Searcher issues one web search for a user query. Failures are reported
// through the Result, never as an error.
type Searcher interface {
	Search(ctx context.Context, query string) search.Result
}

// Orchestrator drives a single chat turn: it decides whether to search,
// assembles the prompt, invokes the LLM, and updates the session histories.
type Orchestrator struct {
	generator Generator
	searcher  Searcher
	logger    *zap.Logger
}

// NewOrchestrator creates an orchestrator. The searcher may be nil, in which
// case search augmentation is silently unavailable even when a session asks
// for it.
func NewOrchestrator(generator Generator, searcher Searcher, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		searcher:  searcher,
		logger:    logger,
	}
}

// HandleTurn runs one full turn for the given session and always returns a
// displayable string, so the surrounding UI never needs special-case error
// rendering.
//
// A search failure degrades gracefully: the error line is injected into the
// prompt's search section and the turn continues. An LLM failure aborts only
// this turn: the error string takes the reply's place in the display history
// and the model context is left exactly as it was, keeping prior history
// intact for the next attempt.
//
// Turns on the same session are serialized; the two outbound calls within a
// turn are sequential because the prompt depends on the search output.
func (o *Orchestrator) HandleTurn(ctx context.Context, sess *Session, cfg Config, userQuery string) string {
	sess.BeginTurn()
	defer sess.EndTurn()

	sess.AppendUser(userQuery)

	var fullPrompt string
	searched := cfg.SearchEnabled && o.searcher != nil
	if searched {
		result := o.searcher.Search(ctx, userQuery)
		if result.Failed() {
			o.logger.Warn("search failed, continuing without results",
				zap.String("session_id", sess.ID()),
				zap.String("error", result.Error),
			)
		}
		// The search section is included whenever a search ran, even when it
		// came back empty or as an error line.
		fullPrompt = prompt.BuildWithSearch(prompt.MedicalPreamble, userQuery, search.FormatResults(result))
	} else {
		fullPrompt = prompt.Build(prompt.MedicalPreamble, userQuery)
	}

	history := sess.ModelContext()

	o.logger.Debug("invoking llm",
		zap.String("session_id", sess.ID()),
		zap.String("query", utils.Truncate(userQuery, 80)),
		zap.Int("history_len", len(history)),
		zap.Bool("search_augmented", searched),
	)

	reply, err := o.generator.Generate(ctx, history, fullPrompt)
	if err != nil {
		o.logger.Error("llm generation failed",
			zap.String("session_id", sess.ID()),
			zap.Error(err),
		)

		msg := fmt.Sprintf("An error occurred: %v", err)
		sess.AppendAssistant(msg)
		return msg
	}

	sess.CompleteExchange(userQuery, reply)

	return reply
}
