package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mediassistco/mediassist/pkg/chat"
)

// Server is the API server for the chat front-end. It owns the in-memory
// session registry; sessions live only as long as the process.
type Server struct {
	config       Config
	registry     *chat.Registry
	orchestrator *chat.Orchestrator
	logger       *zap.Logger
	app          *fiber.App
}

// NewServer creates a new API server. The orchestrator is injected so the
// same wiring serves both the HTTP surface and the terminal chat.
func NewServer(config Config, orchestrator *chat.Orchestrator, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:       config,
		registry:     chat.NewRegistry(),
		orchestrator: orchestrator,
		logger:       logger,
		app:          app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/v1/sessions", s.handleCreateSession)
	app.Get("/v1/sessions/:id/history", s.handleGetHistory)
	app.Post("/v1/sessions/:id/chat", s.handleChat)
	app.Put("/v1/sessions/:id/search", s.handleSetSearchMode)
	app.Post("/v1/sessions/:id/clear", s.handleClearHistory)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
