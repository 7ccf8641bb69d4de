// Package mediassistcmder
package mediassistcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/mediassistco/mediassist/cmd/mediassist/auth"
	chatcmder "github.com/mediassistco/mediassist/cmd/mediassist/chat"
	configcmder "github.com/mediassistco/mediassist/cmd/mediassist/config"
	servecmder "github.com/mediassistco/mediassist/cmd/mediassist/serve"
	versioncmder "github.com/mediassistco/mediassist/cmd/version"
)

const mediassistLongDesc string = `MediAssist is a medical AI chat assistant backed by Gemini, with optional
web-search augmentation via the Serper API.

Start chatting with:
  mediassist chat              Interactive terminal chat
  mediassist chat --search     Chat with web-search augmentation

Run the HTTP API for a web front-end:
  mediassist serve             Run the API server

Store API keys:
  mediassist auth gemini       Store the Gemini API key
  mediassist auth serper       Store the Serper API key`

const mediassistShortDesc string = "MediAssist - Medical AI Assistant"

func NewMediassistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mediassist",
		Short: mediassistShortDesc,
		Long:  mediassistLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .mediassist/ config directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
