package llm

// StreamChunk represents a single classified chunk in a streaming response.
// This is the internal representation produced by a provider after parsing
// its specific streaming format.
//
// A chunk separates the two delta channels: ReasoningDelta carries the
// model's intermediate rationale, ContentDelta carries the answer itself.
// Either may be empty; a chunk can also carry nothing but the finish signal.
type StreamChunk struct {
	// ReasoningDelta is a fragment of the reasoning channel, if present.
	ReasoningDelta string `json:"reasoning_delta,omitempty"`

	// ContentDelta is a fragment of the answer channel, if present.
	ContentDelta string `json:"content_delta,omitempty"`

	// Finished marks the terminal chunk of the completion.
	Finished bool `json:"finished"`

	// FinishReason is the provider's stop reason (only on the final chunk).
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage metrics (typically only present on the final chunk)
	Usage *Usage `json:"usage,omitempty"`
}
