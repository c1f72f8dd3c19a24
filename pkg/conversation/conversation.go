package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// Conversation is the ordered message list for one chat surface.
type Conversation struct {
	// mu is a read write sync mutex for locking the message list
	mu sync.RWMutex

	messages []Message
}

// New creates an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// Append adds a message to the end of the conversation and returns its index.
// A zero ID is assigned a fresh uuid.
func (c *Conversation) Append(msg Message) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	c.messages = append(c.messages, msg)
	return len(c.messages) - 1
}

// AppendContent appends delta to the content of the message at index i.
// Completed messages are immutable.
func (c *Conversation) AppendContent(i int, delta string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.messages) {
		return IndexError{Index: i, Len: len(c.messages)}
	}
	if c.messages[i].IsComplete {
		return ErrMessageComplete
	}

	c.messages[i].Content += delta
	return nil
}

// Finalize attaches the cleaned reasoning to the message at index i and
// marks it complete. Finalizing an already-complete message is an error.
func (c *Conversation) Finalize(i int, reasoning string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.messages) {
		return IndexError{Index: i, Len: len(c.messages)}
	}
	if c.messages[i].IsComplete {
		return ErrMessageComplete
	}

	c.messages[i].Reasoning = reasoning
	c.messages[i].IsComplete = true
	return nil
}

// Message returns a copy of the message at index i.
func (c *Conversation) Message(i int) (Message, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i < 0 || i >= len(c.messages) {
		return Message{}, IndexError{Index: i, Len: len(c.messages)}
	}

	return c.messages[i], nil
}

// Messages returns a copy of the full ordered message list.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
