// Package openai implements the Provider interface for OpenAI-compatible
// chat-completions endpoints that stream a reasoning channel alongside the
// answer channel (DeepSeek-R1 style reasoning_content deltas).
package openai

import (
	"encoding/json"

	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
)

// provider implements the Provider interface for OpenAI's Chat Completions API.
type provider struct{}

func New() *provider { return &provider{} }

func (o *provider) Name() string {
	return "openai"
}

// MarshalRequest converts the internal request into the OpenAI wire body.
func (o *provider) MarshalRequest(req *llm.ChatRequest) ([]byte, error) {
	messages := make([]openaiMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openaiMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return json.Marshal(openaiRequest{
		Model:         req.Model,
		Messages:      messages,
		Temperature:   req.Temperature,
		Stream:        req.Stream,
		ShowReasoning: req.ShowReasoning,
	})
}

// ParseStreamChunk classifies a single SSE data payload.
//
// Events without choices are skipped as no-ops rather than errors: servers
// interleave housekeeping payloads (role primers, usage-only frames) with
// delta-bearing chunks. A chunk whose delta is absent still surfaces the
// finish signal when finish_reason is set.
func (o *provider) ParseStreamChunk(payload []byte) (*llm.StreamChunk, error) {
	var raw openaiStreamChunk
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	if len(raw.Choices) == 0 {
		// A usage-only terminal frame (stream_options include_usage style)
		// has no choices but still carries token accounting.
		if raw.Usage != nil {
			return &llm.StreamChunk{Usage: convertUsage(raw.Usage)}, nil
		}
		return nil, nil
	}

	choice := raw.Choices[0]

	chunk := &llm.StreamChunk{
		Usage: convertUsage(raw.Usage),
	}

	if choice.FinishReason != nil && *choice.FinishReason != "" {
		chunk.Finished = true
		chunk.FinishReason = *choice.FinishReason
	}

	if choice.Delta == nil {
		// No delta: only the finish signal (if any) survives.
		if !chunk.Finished && chunk.Usage == nil {
			return nil, nil
		}
		return chunk, nil
	}

	if choice.Delta.ReasoningContent != nil {
		chunk.ReasoningDelta = *choice.Delta.ReasoningContent
	}
	if choice.Delta.Content != nil {
		chunk.ContentDelta = *choice.Delta.Content
	}

	return chunk, nil
}

func convertUsage(u *openaiUsage) *llm.Usage {
	if u == nil {
		return nil
	}

	return &llm.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
