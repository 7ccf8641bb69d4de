// Package configcmder provides the config command for managing persistent
// mediassist configuration stored in the .mediassist/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent mediassist configuration.

Configuration is stored as config.toml in the .mediassist/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  server.listen, client.api_target, llm.model,
  search.enabled, search.endpoint, search.max_results

Use subcommands to get, set, or list configuration values:
  mediassist config set <key> <value>    Set a configuration value
  mediassist config get <key>            Get a configuration value
  mediassist config list                 List all configuration values

Examples:
  mediassist config set llm.model gemini-2.0-flash
  mediassist config set search.enabled true
  mediassist config get server.listen
  mediassist config list`

const configShortDesc string = "Manage persistent mediassist configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
