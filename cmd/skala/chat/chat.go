// Package chatcmder provides the interactive chat command: a REPL that
// streams answers live and shows the cleaned reasoning block once a turn
// finalizes.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
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

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

type chatCommander struct {
	baseURL       string
	apiKey        string
	model         string
	temperature   float64
	showReasoning bool
	timeout       uint
	debug         bool

	logger *zap.Logger
}

const chatLongDesc string = `Start an interactive chat session.

Messages stream in live; models that expose a reasoning channel
(DeepSeek-R1 style) have their intermediate rationale accumulated,
deduplicated, and shown as a dim block once the answer completes.

Slash commands inside the session:
  /exit         Quit the session (Ctrl+D also works)
  /new          Start a fresh conversation
  /reasoning    Toggle display of the reasoning block

Examples:
  skala chat
  skala chat --model deepseek-reasoner --base-url https://api.deepseek.com/v1`

const chatShortDesc string = "Interactive chat with streamed reasoning"

// chatFlagKeys are the registry flags this command binds into viper.
var chatFlagKeys = []string{
	config.FlagBaseURL,
	config.FlagAPIKey,
	config.FlagModel,
	config.FlagTemperature,
	config.FlagShowReasoning,
	config.FlagTimeout,
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, chatFlagKeys)

			cmder.baseURL = v.GetString("chat.base_url")
			cmder.apiKey = v.GetString("chat.api_key")
			cmder.model = v.GetString("chat.model")
			cmder.temperature = v.GetFloat64("chat.temperature")
			cmder.showReasoning = v.GetBool("chat.show_reasoning")
			cmder.timeout = v.GetUint("chat.timeout_seconds")

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

	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.baseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIKey, &cmder.apiKey)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddFloat64Flag(cmd, config.Flags, config.FlagTemperature, &cmder.temperature)
	config.AddBoolFlag(cmd, config.Flags, config.FlagShowReasoning, &cmder.showReasoning)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *chatCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	sess := c.newSession()

	fmt.Println()
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.model),
	)
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Endpoint:"),
		cliui.DimStyle.Render(c.baseURL),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit, /new, /reasoning."))

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
			if c.handleSlashCommand(input, &sess) {
				break
			}
			continue
		}

		c.streamTurn(sess, input)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// newSession builds a fresh session over an empty conversation.
func (c *chatCommander) newSession() *session.Session {
	prov := openai.New()
	client := chat.NewClient(chat.Config{
		BaseURL:       c.baseURL,
		APIKey:        c.apiKey,
		Model:         c.model,
		Temperature:   c.temperature,
		ShowReasoning: c.showReasoning,
		Timeout:       time.Duration(c.timeout) * time.Second,
	}, prov, c.logger)

	return session.New(conversation.New(), client, prov, c.logger)
}

// handleSlashCommand processes a REPL slash command. Returns true when the
// session should end.
func (c *chatCommander) handleSlashCommand(input string, sess **session.Session) bool {
	switch input {
	case "/exit":
		return true

	case "/new":
		*sess = c.newSession()
		fmt.Printf("  %s %s\n\n", cliui.SuccessMark, cliui.DimStyle.Render("Started a new conversation."))

	case "/reasoning":
		c.showReasoning = !c.showReasoning
		state := "off"
		if c.showReasoning {
			state = "on"
		}
		fmt.Printf("  %s Reasoning display: %s\n\n", cliui.SuccessMark, cliui.ValueStyle.Render(state))

	default:
		fmt.Printf("  %s Unknown command %q. Try /exit, /new, or /reasoning.\n\n", cliui.FailMark, input)
	}

	return false
}

// streamTurn runs one turn and renders its updates live: content tokens are
// printed as they grow, the reasoning block after finalization.
func (c *chatCommander) streamTurn(sess *session.Session, input string) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.timeout)*time.Second)
		defer cancel()
	}

	updates, err := sess.Send(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %s %v\n\n", cliui.FailMark, err)
		return
	}

	fmt.Print(assistantPrompt)

	printed := 0
	var last session.Update
	for u := range updates {
		// Updates are cumulative snapshots; print only the unseen tail.
		if len(u.Content) > printed {
			fmt.Print(u.Content[printed:])
			printed = len(u.Content)
		}
		last = u
	}
	fmt.Println()

	if last.Phase == session.PhaseFailed {
		fmt.Fprintf(os.Stderr, "  %s %v\n\n", cliui.FailMark, last.Err)
		return
	}

	if c.showReasoning && last.Reasoning != "" {
		fmt.Println(renderReasoningBlock(last.Reasoning))
	}

	fmt.Println()
}

// renderReasoningBlock formats the cleaned reasoning trace as a dim,
// indented block under the answer.
func renderReasoningBlock(reasoning string) string {
	var b strings.Builder
	b.WriteString(cliui.DimStyle.Render("  ┄ reasoning"))
	for _, line := range strings.Split(reasoning, "\n") {
		b.WriteString("\n")
		b.WriteString(cliui.DimStyle.Render("  " + line))
	}
	return b.String()
}
