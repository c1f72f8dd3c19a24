// Package llm holds the provider-agnostic wire types for chat-completions
// requests and streamed response chunks.
package llm

// Conversation roles understood by chat-completions endpoints.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation as sent on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage creates a user-role message with the given text.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}
