// Package chatcmder provides the chat command for interactive terminal chat
// with the MediAssist assistant.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediassistco/mediassist/api"
	"github.com/mediassistco/mediassist/pkg/chat"
	"github.com/mediassistco/mediassist/pkg/cliui"
	"github.com/mediassistco/mediassist/pkg/config"
	"github.com/mediassistco/mediassist/pkg/credentials"
	"github.com/mediassistco/mediassist/pkg/llm"
	"github.com/mediassistco/mediassist/pkg/logger"
	"github.com/mediassistco/mediassist/pkg/prompt"
	"github.com/mediassistco/mediassist/pkg/search"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("mediassist> ")
)

type chatCommander struct {
	model            string
	searchEnabled    bool
	searchEndpoint   string
	searchMaxResults uint
	remote           bool
	apiTarget        string
	configDir        string
	debug            bool

	logger *zap.Logger
}

const chatLongDesc string = `Start an interactive chat session with MediAssist.

Each turn is sent to Gemini together with the accumulated conversation
history. With search enabled, the question is first run through the Serper
web-search API and the results are injected into the prompt so the reply can
cite current sources.

A Gemini API key is required (mediassist auth gemini, or GEMINI_API_KEY).
Search augmentation additionally needs a Serper key (mediassist auth serper,
or SERPER_API_KEY).

With --remote, the session runs on a mediassistd server at --api-target
instead of in-process. The server owns the model and the API keys; only the
search toggle applies locally.

In-session commands:
  /search on|off    Toggle web-search augmentation
  /clear            Clear the conversation history
  /exit             Quit (Ctrl+D also works)

Examples:
  mediassist chat
  mediassist chat --search
  mediassist chat --model gemini-2.0-flash
  mediassist chat --remote --api-target http://localhost:8080`

const chatShortDesc string = "Interactive chat with the MediAssist assistant"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagModel,
				config.FlagSearch,
				config.FlagSearchEndpoint,
				config.FlagSearchMaxResults,
				config.FlagAPITarget,
			})

			cmder.model = v.GetString("llm.model")
			cmder.searchEnabled = v.GetBool("search.enabled")
			cmder.searchEndpoint = v.GetString("search.endpoint")
			cmder.searchMaxResults = v.GetUint("search.max_results")
			cmder.apiTarget = v.GetString("client.api_target")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			if cmder.remote {
				return cmder.runRemote()
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddBoolFlag(cmd, config.Flags, config.FlagSearch, &cmder.searchEnabled)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchEndpoint, &cmder.searchEndpoint)
	config.AddUintFlag(cmd, config.Flags, config.FlagSearchMaxResults, &cmder.searchMaxResults)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	cmd.Flags().BoolVar(&cmder.remote, "remote", false, "Chat through a running mediassistd server instead of in-process")

	return cmd
}

func (c *chatCommander) run() error {
	c.logger = logger.NewLoggerWithWriters(c.debug, os.Stderr)
	defer func() { _ = c.logger.Sync() }()

	ctx := context.Background()

	creds, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	geminiKey, err := creds.Resolve(credentials.ProviderGemini)
	if err != nil {
		return err
	}

	generator, err := llm.NewGeminiClient(ctx, geminiKey, c.model)
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	var searcher chat.Searcher
	serperKey, serperErr := creds.Resolve(credentials.ProviderSerper)
	if serperErr == nil {
		searcher = search.NewClient(serperKey,
			search.WithEndpoint(c.searchEndpoint),
			search.WithMaxResults(int(c.searchMaxResults)),
		)
	}

	if c.searchEnabled && searcher == nil {
		fmt.Printf("\n  %s Search requested but no Serper API key is configured; continuing without augmentation.\n",
			cliui.WarnStyle.Render("!"),
		)
		c.searchEnabled = false
	}

	orchestrator := chat.NewOrchestrator(generator, searcher, c.logger)
	sess := chat.NewSession()
	cfg := chat.Config{SearchEnabled: c.searchEnabled}

	fmt.Println()
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Model:"), cliui.NameStyle.Render(generator.Model()))
	fmt.Printf("  %s %s\n\n", cliui.KeyStyle.Render("Search:"), searchStatus(cfg.SearchEnabled))
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your question and press Enter. /search on|off, /clear, /exit or Ctrl+D to quit."))

	c.printAssistant(prompt.Greeting)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := c.handleCommand(input, sess, &cfg, searcher)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			}
			if quit {
				break
			}
			continue
		}

		// The placeholder the web UI shows while a turn is in flight becomes
		// a spinner here.
		var reply string
		_ = cliui.Step(os.Stdout, "Researching medical information...", func() error {
			reply = orchestrator.HandleTurn(ctx, sess, cfg, input)
			return nil
		})

		c.printAssistant(reply)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// runRemote drives the same interactive loop against a mediassistd server.
// The server holds the session, the keys, and the model; this side is a thin
// terminal front.
func (c *chatCommander) runRemote() error {
	c.logger = logger.NewLoggerWithWriters(c.debug, os.Stderr)
	defer func() { _ = c.logger.Sync() }()

	ctx := context.Background()

	client := api.NewClient(c.apiTarget)
	if err := client.Ping(ctx); err != nil {
		return err
	}

	sess, err := client.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	searchEnabled := sess.SearchEnabled
	if c.searchEnabled != searchEnabled {
		updated, err := client.SetSearchMode(ctx, sess.SessionID, c.searchEnabled)
		if err != nil {
			return fmt.Errorf("setting search mode: %w", err)
		}
		searchEnabled = updated.SearchEnabled
	}

	c.logger.Debug("remote session created",
		zap.String("api_target", client.Target()),
		zap.String("session_id", sess.SessionID),
	)

	fmt.Println()
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Server:"), cliui.NameStyle.Render(client.Target()))
	fmt.Printf("  %s %s\n\n", cliui.KeyStyle.Render("Search:"), searchStatus(searchEnabled))
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your question and press Enter. /search on|off, /clear, /exit or Ctrl+D to quit."))

	c.printAssistant(prompt.Greeting)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := c.handleRemoteCommand(ctx, input, client, sess.SessionID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			}
			if quit {
				break
			}
			continue
		}

		var reply string
		turnErr := cliui.Step(os.Stdout, "Researching medical information...", func() error {
			resp, err := client.Chat(ctx, sess.SessionID, input)
			if err != nil {
				return err
			}
			reply = resp.Reply
			return nil
		})
		if turnErr != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, turnErr)
			continue
		}

		c.printAssistant(reply)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// handleRemoteCommand processes an in-session slash command against the
// server. Returns true when the session should end.
func (c *chatCommander) handleRemoteCommand(ctx context.Context, input string, client *api.Client, sessionID string) (bool, error) {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/exit":
		return true, nil

	case "/clear":
		if _, err := client.ClearHistory(ctx, sessionID); err != nil {
			return false, err
		}
		fmt.Printf("\n  %s Chat history cleared\n\n", cliui.SuccessMark)
		c.printAssistant(prompt.Greeting)
		return false, nil

	case "/search":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return false, fmt.Errorf("usage: /search on|off")
		}
		enable := fields[1] == "on"
		if _, err := client.SetSearchMode(ctx, sessionID, enable); err != nil {
			return false, err
		}
		fmt.Printf("\n  %s Medical search %s\n\n", cliui.SuccessMark, searchStatus(enable))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q (available: /search, /clear, /exit)", fields[0])
	}
}

// handleCommand processes an in-session slash command. Returns true when the
// session should end.
func (c *chatCommander) handleCommand(input string, sess *chat.Session, cfg *chat.Config, searcher chat.Searcher) (bool, error) {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/exit":
		return true, nil

	case "/clear":
		sess.Clear()
		fmt.Printf("\n  %s Chat history cleared\n\n", cliui.SuccessMark)
		c.printAssistant(prompt.Greeting)
		return false, nil

	case "/search":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return false, fmt.Errorf("usage: /search on|off")
		}
		enable := fields[1] == "on"
		if enable && searcher == nil {
			return false, fmt.Errorf("no Serper API key configured; run 'mediassist auth serper'")
		}
		cfg.SearchEnabled = enable
		fmt.Printf("\n  %s Medical search %s\n\n", cliui.SuccessMark, searchStatus(enable))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q (available: /search, /clear, /exit)", fields[0])
	}
}

func (c *chatCommander) printAssistant(text string) {
	rendered, err := cliui.RenderMarkdown(text)
	if err != nil {
		rendered = text + "\n"
	}

	fmt.Println()
	fmt.Print(assistantPrompt)
	fmt.Println()
	fmt.Print(rendered)
	fmt.Println()
}

func searchStatus(enabled bool) string {
	if enabled {
		return cliui.ValueStyle.Render("enabled")
	}
	return cliui.DimStyle.Render("disabled")
}
