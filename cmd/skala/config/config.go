// Package configcmder provides the config command for managing persistent
// skala configuration stored in the .skala/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent skala configuration.

Configuration is stored as config.toml in the .skala/ directory and provides
default values for command flags. CLI flags and SKALA_* environment variables
always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  chat.base_url, chat.api_key, chat.model, chat.temperature,
  chat.show_reasoning, chat.timeout_seconds,
  ui.markdown

Use subcommands to get, set, or list configuration values:
  skala config set <key> <value>    Set a configuration value
  skala config get <key>            Get a configuration value
  skala config list                 List all configuration values

Examples:
  skala config set chat.model deepseek-reasoner
  skala config set chat.base_url https://api.deepseek.com/v1
  skala config get chat.model
  skala config list`

const configShortDesc string = "Manage persistent skala configuration"

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
