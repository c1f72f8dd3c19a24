package config

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultModel   = "deepseek-r1:8b"

	defaultTemperature    = 0.7
	defaultShowReasoning  = true
	defaultTimeoutSeconds = 300

	defaultMarkdown = true
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Chat: ChatConfig{
			BaseURL:        defaultBaseURL,
			Model:          defaultModel,
			Temperature:    defaultTemperature,
			ShowReasoning:  defaultShowReasoning,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		UI: UIConfig{
			Markdown: defaultMarkdown,
		},
	}
}
