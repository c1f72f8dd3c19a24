// Package provider defines the interface between the session turn loop and a
// specific chat-completions wire format.
package provider

import (
	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
)

// Provider defines the interface for a specific LLM API wire format.
// Each provider implementation knows how to marshal requests into and parse
// streamed chunks out of its specific format.
type Provider interface {
	// Name returns the canonical provider name (e.g., "openai")
	Name() string

	// MarshalRequest converts the internal request into the provider-specific
	// request body.
	MarshalRequest(req *llm.ChatRequest) ([]byte, error)

	// ParseStreamChunk classifies a single streaming event payload into the
	// internal format, separating the reasoning and answer delta channels.
	// Returns an error if the payload is not valid JSON.
	// Returns (nil, nil) if the chunk should be skipped (e.g. an event with
	// no choices or no delta).
	ParseStreamChunk(payload []byte) (*llm.StreamChunk, error)
}
