// Package conversation provides the ordered, append-only message list a chat
// surface renders. Mutations are guarded so observers never see a message
// half-applied, and a message becomes immutable once it completes.
package conversation

// Message is a single entry in the conversation display order.
type Message struct {
	// ID uniquely identifies the message. Assigned on Append when empty.
	ID string

	// Content is the message text. For assistant messages it grows
	// incrementally while the turn streams.
	Content string

	// IsUser marks messages typed by the user.
	IsUser bool

	// Reasoning holds the cleaned reasoning trace, set at finalization.
	Reasoning string

	// IsComplete marks the message immutable.
	IsComplete bool

	// ShowReasoning marks whether the reasoning block should be rendered
	// once the message completes.
	ShowReasoning bool
}
