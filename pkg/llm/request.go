package llm

// ChatRequest represents a provider-agnostic chat completion request.
// Providers marshal this into their specific request format.
type ChatRequest struct {
	// Model name (e.g., "deepseek-reasoner", "gpt-4o-mini")
	Model string `json:"model"`

	// Conversation messages
	Messages []Message `json:"messages"`

	// Sampling temperature
	Temperature *float64 `json:"temperature,omitempty"`

	// Whether to stream the response
	Stream bool `json:"stream"`

	// ShowReasoning asks the endpoint to stream the reasoning channel
	// alongside the answer channel.
	ShowReasoning bool `json:"show_reasoning"`
}
