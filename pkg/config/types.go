package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent skala configuration stored as config.toml
// in the .skala/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int        `toml:"version"`
	Chat    ChatConfig `toml:"chat"`
	UI      UIConfig   `toml:"ui"`
}

// ChatConfig holds the settings for talking to the chat-completions endpoint.
type ChatConfig struct {
	// BaseURL is the API root, e.g. "https://api.deepseek.com/v1". The
	// client appends /chat/completions.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is sent as a bearer token when non-empty. Prefer the
	// SKALA_CHAT_API_KEY environment variable over storing it here.
	APIKey string `toml:"api_key,omitempty"`

	Model string `toml:"model,omitempty"`

	// Temperature for sampling. Zero is treated as unset and replaced by
	// the default when loading through Configer; use viper-backed commands
	// for an explicit zero.
	Temperature float64 `toml:"temperature,omitempty"`

	// ShowReasoning asks the endpoint to stream the reasoning channel.
	ShowReasoning bool `toml:"show_reasoning"`

	// TimeoutSeconds bounds one whole turn, connection to [DONE].
	TimeoutSeconds uint `toml:"timeout_seconds,omitempty"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Markdown renders final answers through the markdown renderer in
	// one-shot commands.
	Markdown bool `toml:"markdown"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"chat.base_url": {
		get: func(c *Config) string { return c.Chat.BaseURL },
		set: func(c *Config, v string) error { c.Chat.BaseURL = v; return nil },
	},
	"chat.api_key": {
		get: func(c *Config) string { return c.Chat.APIKey },
		set: func(c *Config, v string) error { c.Chat.APIKey = v; return nil },
	},
	"chat.model": {
		get: func(c *Config) string { return c.Chat.Model },
		set: func(c *Config, v string) error { c.Chat.Model = v; return nil },
	},
	"chat.temperature": {
		get: func(c *Config) string {
			if c.Chat.Temperature == 0 {
				return ""
			}
			return strconv.FormatFloat(c.Chat.Temperature, 'g', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.temperature: %w", err)
			}
			c.Chat.Temperature = f
			return nil
		},
	},
	"chat.show_reasoning": {
		get: func(c *Config) string { return strconv.FormatBool(c.Chat.ShowReasoning) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.show_reasoning: %w", err)
			}
			c.Chat.ShowReasoning = b
			return nil
		},
	},
	"chat.timeout_seconds": {
		get: func(c *Config) string {
			if c.Chat.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Chat.TimeoutSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for chat.timeout_seconds: %w", err)
			}
			c.Chat.TimeoutSeconds = uint(n)
			return nil
		},
	},
	"ui.markdown": {
		get: func(c *Config) string { return strconv.FormatBool(c.UI.Markdown) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for ui.markdown: %w", err)
			}
			c.UI.Markdown = b
			return nil
		},
	},
}
