// Package skalacmder
package skalacmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/skalacodebr/chatgpt-skala/cmd/skala/ask"
	chatcmder "github.com/skalacodebr/chatgpt-skala/cmd/skala/chat"
	configcmder "github.com/skalacodebr/chatgpt-skala/cmd/skala/config"
	initcmder "github.com/skalacodebr/chatgpt-skala/cmd/skala/init"
	versioncmder "github.com/skalacodebr/chatgpt-skala/cmd/version"
)

const skalaLongDesc string = `Skala is a terminal client for OpenAI-compatible chat-completions
endpoints that stream a reasoning channel alongside the answer.

Start chatting:
  skala chat               Interactive chat session
  skala ask "question"     One-shot question with a rendered answer

Settings live in .skala/config.toml and can be overridden with
SKALA_* environment variables or flags (see "skala config").`

const skalaShortDesc string = "Skala - Reasoning-aware chat client"

func NewSkalaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skala",
		Short: skalaShortDesc,
		Long:  skalaLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .skala/ directory location")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
