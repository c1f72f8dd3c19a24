package sse

import (
	"bufio"
	"io"
	"strings"
)

// doneSentinel is the terminal data payload sent by OpenAI-compatible
// endpoints after the last chunk of a streamed completion.
const doneSentinel = "[DONE]"

// Reader parses SSE events from a source io.Reader.
//
// The underlying bufio.Scanner buffers across read boundaries, so events
// split across transport chunks are reassembled correctly regardless of how
// the server flushes.
type Reader struct {
	scanner *bufio.Scanner

	// current accumulates fields for the event being built in the current scan.
	current *Event
	hasData bool

	// done is latched once the [DONE] sentinel is observed. Every Next call
	// after that returns io.EOF without touching the source.
	done bool
}

// NewReader returns a Reader that parses SSE events from the src io.Reader.
func NewReader(src io.Reader) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &Reader{
		scanner: scanner,
		current: &Event{},
	}
}

// Next returns the next parsed SSE event from the scanner. It blocks until a
// complete event is available (terminated by a blank line in the stream).
// Next returns io.EOF when the source is exhausted or once the [DONE]
// sentinel has been observed; the sentinel itself is never surfaced to
// callers, so event data can always be handed straight to a JSON parser.
func (r *Reader) Next() (*Event, error) {
	if r.done {
		return nil, io.EOF
	}

	for r.scanner.Scan() {
		raw := r.scanner.Text()

		// A blank line signals the end of the current event.
		if raw == "" {
			if r.hasData {
				ev := r.take()
				if ev == nil {
					return nil, io.EOF
				}
				return ev, nil
			}

			// Blank line with no accumulated fields — skip (e.g. leading
			// blank lines or keep-alive newlines).
			continue
		}

		// Lines starting with ':' are comments. Skip them in Event parsing.
		if strings.HasPrefix(raw, ":") {
			continue
		}

		r.parseLine(raw)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Source exhausted and no error from scanner.
	// If there is an in-progress event (stream ended without a trailing blank
	// line), yield it.
	if r.hasData {
		if ev := r.take(); ev != nil {
			return ev, nil
		}
	}

	r.done = true
	return nil, io.EOF
}

// take finishes the in-progress event and resets the accumulator. It returns
// nil when the event carried the [DONE] sentinel, latching the reader done.
func (r *Reader) take() *Event {
	ev := r.current
	r.reset()

	if strings.TrimSpace(ev.Data) == doneSentinel {
		r.done = true
		return nil
	}

	return ev
}

// parseLine processes a single non-empty, non-comment SSE line and
// accumulates the field into the current event.
//
// Per the SSE spec, a line has the form "field:value" where the first
// space after the colon is optional and stripped if present.
func (r *Reader) parseLine(line string) {
	var field, value string

	if before, after, ok := strings.Cut(line, ":"); ok {
		field = before
		value = after
		// Strip a single leading space after the colon, per spec.
		value = strings.TrimPrefix(value, " ")
	} else {
		// Line with no colon: the entire line is the field name with
		// an empty value.
		field = line
	}

	switch field {
	case "data":
		if r.hasData && r.current.Data != "" {
			// Multiple data fields are joined with "\n".
			r.current.Data += "\n"
		}
		r.current.Data += value
		r.hasData = true
	case "event":
		r.current.Type = value
		r.hasData = true
	case "id":
		r.current.ID = value
		r.hasData = true
	default:
		// * "retry" is intentionally ignored — not relevant for client use.
		// * Other unknown fields are ignored per the SSE spec.
	}
}

// reset clears the accumulated event state for the next event.
func (r *Reader) reset() {
	r.current = &Event{}
	r.hasData = false
}
