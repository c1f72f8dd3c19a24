package session

import "github.com/skalacodebr/chatgpt-skala/pkg/llm"

// Phase identifies where a turn is in its lifecycle.
type Phase int

const (
	// PhaseReasoning: the turn is streaming reasoning deltas and no answer
	// message exists yet.
	PhaseReasoning Phase = iota

	// PhaseAnswering: the answer message exists and content is streaming in.
	PhaseAnswering

	// PhaseFinal: the turn finalized; Content and Reasoning are complete.
	PhaseFinal

	// PhaseFailed: the turn aborted; Err carries the cause.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseReasoning:
		return "reasoning"
	case PhaseAnswering:
		return "answering"
	case PhaseFinal:
		return "final"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Update is a cumulative snapshot of the in-flight turn, published after
// every applied chunk and once at turn end. Content and Reasoning always hold
// the full text accumulated so far, so consumers that miss intermediate
// updates lose nothing.
//
// While the turn streams, Reasoning is the raw buffer; the PhaseFinal update
// carries the cleaned form.
type Update struct {
	Phase     Phase
	Content   string
	Reasoning string
	Usage     *llm.Usage
	Err       error
}

// updateBufferSize is the capacity of a turn's update channel. Intermediate
// snapshots are dropped rather than blocking the turn loop when the buffer
// fills; terminal updates are always delivered.
const updateBufferSize = 64

// publish delivers a non-terminal snapshot without blocking the turn loop.
func publish(updates chan<- Update, u Update) {
	select {
	case updates <- u:
	default:
		// Snapshots are cumulative, so a slow consumer only misses
		// intermediate states, never final text.
	}
}
