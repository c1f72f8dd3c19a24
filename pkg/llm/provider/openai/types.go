package openai

// openaiRequest represents OpenAI's chat-completions request format, extended
// with the show_reasoning switch honored by reasoning-capable endpoints.
type openaiRequest struct {
	Model         string          `json:"model"`
	Messages      []openaiMessage `json:"messages"`
	Temperature   *float64        `json:"temperature,omitempty"`
	Stream        bool            `json:"stream"`
	ShowReasoning bool            `json:"show_reasoning,omitempty"`
}

// openaiMessage represents a message in OpenAI's format.
type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openaiStreamChunk represents a single SSE data payload of a streamed
// completion. Pointer fields distinguish absent/null from empty.
type openaiStreamChunk struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int          `json:"index"`
		Delta        *openaiDelta `json:"delta"`
		FinishReason *string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *openaiUsage `json:"usage,omitempty"`
}

// openaiDelta carries the two incremental channels of a streamed chunk.
// reasoning_content is the DeepSeek-R1 style rationale channel.
type openaiDelta struct {
	Role             string  `json:"role,omitempty"`
	ReasoningContent *string `json:"reasoning_content"`
	Content          *string `json:"content"`
}

type openaiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
