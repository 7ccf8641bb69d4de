package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mediassistco/mediassist/pkg/chat"
)

// ErrorResponse is the JSON error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse describes a session's current display state. Every reply
// that changes a session returns it, so the UI redraws from the response
// rather than observing hidden state.
type SessionResponse struct {
	SessionID     string      `json:"session_id"`
	SearchEnabled bool        `json:"search_enabled"`
	Messages      []chat.Turn `json:"messages"`
}

// ChatRequest is the body for POST /v1/sessions/:id/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's reply for a single turn. Reply is
// always populated: LLM failures arrive here as a displayable error string
// occupying the same position an ordinary reply would.
type ChatResponse struct {
	SessionID string      `json:"session_id"`
	Reply     string      `json:"reply"`
	Messages  []chat.Turn `json:"messages"`
}

// SearchModeRequest is the body for PUT /v1/sessions/:id/search.
type SearchModeRequest struct {
	Enabled bool `json:"enabled"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleCreateSession creates a fresh session seeded with the greeting.
func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	sess := s.registry.Create(chat.Config{
		SearchEnabled: s.config.DefaultSearchEnabled,
	})

	s.logger.Info("session created",
		zap.String("session_id", sess.ID()),
	)

	return c.Status(fiber.StatusCreated).JSON(s.sessionResponse(sess))
}

// handleGetHistory returns the display transcript for a session.
func (s *Server) handleGetHistory(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	return c.JSON(s.sessionResponse(sess))
}

// handleChat runs one chat turn. The request blocks until the turn completes;
// turns on the same session are serialized by the session's turn lock.
func (s *Server) handleChat(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "message is required"})
	}

	reply := s.orchestrator.HandleTurn(c.Context(), sess, sess.Config(), message)

	return c.JSON(ChatResponse{
		SessionID: sess.ID(),
		Reply:     reply,
		Messages:  sess.Display(),
	})
}

// handleSetSearchMode toggles search augmentation for a session.
func (s *Server) handleSetSearchMode(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	var req SearchModeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	cfg := sess.Config()
	cfg.SearchEnabled = req.Enabled
	sess.SetConfig(cfg)

	s.logger.Info("search mode updated",
		zap.String("session_id", sess.ID()),
		zap.Bool("enabled", req.Enabled),
	)

	return c.JSON(s.sessionResponse(sess))
}

// handleClearHistory empties both session histories and restores the
// greeting-only display state.
func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	sess, ok := s.session(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	sess.Clear()

	s.logger.Info("session cleared",
		zap.String("session_id", sess.ID()),
	)

	return c.JSON(s.sessionResponse(sess))
}

// session resolves the :id path parameter to a registered session.
func (s *Server) session(c *fiber.Ctx) (*chat.Session, bool) {
	id := c.Params("id")
	if id == "" {
		return nil, false
	}
	return s.registry.Get(id)
}

func (s *Server) sessionResponse(sess *chat.Session) SessionResponse {
	return SessionResponse{
		SessionID:     sess.ID(),
		SearchEnabled: sess.Config().SearchEnabled,
		Messages:      sess.Display(),
	}
}
