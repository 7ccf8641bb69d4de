// Package servecmder provides the serve command for running the API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediassistco/mediassist/api"
	"github.com/mediassistco/mediassist/pkg/chat"
	"github.com/mediassistco/mediassist/pkg/config"
	"github.com/mediassistco/mediassist/pkg/credentials"
	"github.com/mediassistco/mediassist/pkg/llm"
	"github.com/mediassistco/mediassist/pkg/logger"
	"github.com/mediassistco/mediassist/pkg/search"
)

type ServeCommander struct {
	listen           string
	model            string
	searchEnabled    bool
	searchEndpoint   string
	searchMaxResults uint
	configDir        string
	debug            bool

	logger *zap.Logger
}

const serveLongDesc string = `Run the MediAssist API server.

The server exposes the chat over HTTP for web front-ends: session creation,
chat turns, the search-augmentation toggle, and history clearing. Sessions
are held in memory only and disappear when the process exits.

A Gemini API key is required (mediassist auth gemini, or GEMINI_API_KEY).
A Serper API key enables web-search augmentation; without one, sessions fall
back to plain prompts even when search is toggled on.

Examples:
  mediassist serve
  mediassist serve --listen :9090 --model gemini-2.0-flash`

const serveShortDesc string = "Run the MediAssist API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagListen,
				config.FlagModel,
				config.FlagSearch,
				config.FlagSearchEndpoint,
				config.FlagSearchMaxResults,
			})

			cmder.listen = v.GetString("server.listen")
			cmder.model = v.GetString("llm.model")
			cmder.searchEnabled = v.GetBool("search.enabled")
			cmder.searchEndpoint = v.GetString("search.endpoint")
			cmder.searchMaxResults = v.GetUint("search.max_results")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddBoolFlag(cmd, config.Flags, config.FlagSearch, &cmder.searchEnabled)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchEndpoint, &cmder.searchEndpoint)
	config.AddUintFlag(cmd, config.Flags, config.FlagSearchMaxResults, &cmder.searchMaxResults)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	ctx := context.Background()

	creds, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	// A missing Gemini key is fatal: the session cannot start without the
	// LLM provider.
	geminiKey, err := creds.Resolve(credentials.ProviderGemini)
	if err != nil {
		return err
	}

	generator, err := llm.NewGeminiClient(ctx, geminiKey, c.model)
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	// A missing Serper key only disables augmentation.
	var searcher chat.Searcher
	serperKey, err := creds.Resolve(credentials.ProviderSerper)
	if err != nil {
		c.logger.Warn("serper API key not configured, search augmentation disabled",
			zap.Error(err),
		)
	} else {
		searcher = search.NewClient(serperKey,
			search.WithEndpoint(c.searchEndpoint),
			search.WithMaxResults(int(c.searchMaxResults)),
		)
	}

	orchestrator := chat.NewOrchestrator(generator, searcher, c.logger)

	server := api.NewServer(api.Config{
		ListenAddr:           c.listen,
		DefaultSearchEnabled: c.searchEnabled && searcher != nil,
	}, orchestrator, c.logger)

	c.logger.Info("starting mediassist server",
		zap.String("listen", c.listen),
		zap.String("model", generator.Model()),
		zap.Bool("search_available", searcher != nil),
	)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case sig := <-sigCh:
		c.logger.Info("shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("running server: %w", err)
		}
		return nil
	}
}
