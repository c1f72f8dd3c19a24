// Package askcmder provides the one-shot ask command: a single question, a
// streamed answer, optionally rendered as markdown once complete.
package askcmder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skalacodebr/chatgpt-skala/pkg/chat"
	"github.com/skalacodebr/chatgpt-skala/pkg/cliui"
	"github.com/skalacodebr/chatgpt-skala/pkg/config"
	"github.com/skalacodebr/chatgpt-skala/pkg/conversation"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm/provider/openai"
	"github.com/skalacodebr/chatgpt-skala/pkg/logger"
	"github.com/skalacodebr/chatgpt-skala/pkg/session"
)

type askCommander struct {
	baseURL       string
	apiKey        string
	model         string
	temperature   float64
	showReasoning bool
	timeout       uint
	markdown      bool
	debug         bool

	logger *zap.Logger
}

const askLongDesc string = `Ask a single question and print the streamed answer.

With markdown rendering on (the default), the answer streams into a buffer
and is rendered once complete; with --markdown=false the raw tokens stream
straight to stdout. The model's reasoning trace, when streamed by the
endpoint, is printed as a dim block before the answer.

Examples:
  skala ask "why is the sky blue?"
  skala ask --markdown=false "give me a haiku about streams"
  skala ask -m deepseek-reasoner "what is 17 * 23?"`

const askShortDesc string = "Ask a one-shot question"

var askFlagKeys = []string{
	config.FlagBaseURL,
	config.FlagAPIKey,
	config.FlagModel,
	config.FlagTemperature,
	config.FlagShowReasoning,
	config.FlagTimeout,
	config.FlagMarkdown,
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, askFlagKeys)

			cmder.baseURL = v.GetString("chat.base_url")
			cmder.apiKey = v.GetString("chat.api_key")
			cmder.model = v.GetString("chat.model")
			cmder.temperature = v.GetFloat64("chat.temperature")
			cmder.showReasoning = v.GetBool("chat.show_reasoning")
			cmder.timeout = v.GetUint("chat.timeout_seconds")
			cmder.markdown = v.GetBool("ui.markdown")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(strings.Join(args, " "))
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIKey, &cmder.apiKey)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddFloat64Flag(cmd, config.Flags, config.FlagTemperature, &cmder.temperature)
	config.AddBoolFlag(cmd, config.Flags, config.FlagShowReasoning, &cmder.showReasoning)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddBoolFlag(cmd, config.Flags, config.FlagMarkdown, &cmder.markdown)

	return cmd
}

func (c *askCommander) run(question string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	prov := openai.New()
	client := chat.NewClient(chat.Config{
		BaseURL:       c.baseURL,
		APIKey:        c.apiKey,
		Model:         c.model,
		Temperature:   c.temperature,
		ShowReasoning: c.showReasoning,
		Timeout:       time.Duration(c.timeout) * time.Second,
	}, prov, c.logger)

	sess := session.New(conversation.New(), client, prov, c.logger)

	ctx := context.Background()
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.timeout)*time.Second)
		defer cancel()
	}

	updates, err := sess.Send(ctx, question)
	if err != nil {
		return err
	}

	var last session.Update
	if c.markdown {
		last = c.drainWithSpinner(updates)
	} else {
		last = c.drainStreaming(updates)
	}

	if last.Phase == session.PhaseFailed {
		return fmt.Errorf("turn failed: %w", last.Err)
	}

	if c.showReasoning && last.Reasoning != "" {
		fmt.Printf("\n%s\n", cliui.DimStyle.Render("  "+last.Reasoning))
	}

	if c.markdown {
		rendered, err := cliui.RenderMarkdown(last.Content)
		if err != nil {
			// Fall back to the raw text when the renderer is unavailable.
			rendered = last.Content + "\n"
		}
		fmt.Print(rendered)
	} else {
		fmt.Println()
	}

	return nil
}

// drainWithSpinner shows a spinner while the whole turn streams into the
// buffer, then returns the terminal update.
func (c *askCommander) drainWithSpinner(updates <-chan session.Update) session.Update {
	var last session.Update
	_ = cliui.Step(os.Stderr, "Thinking", func() error {
		for u := range updates {
			last = u
		}
		if last.Phase == session.PhaseFailed {
			return last.Err
		}
		return nil
	})
	return last
}

// drainStreaming prints content tokens to stdout as the snapshots grow.
func (c *askCommander) drainStreaming(updates <-chan session.Update) session.Update {
	printed := 0
	var last session.Update
	for u := range updates {
		if len(u.Content) > printed {
			fmt.Print(u.Content[printed:])
			printed = len(u.Content)
		}
		last = u
	}
	return last
}
