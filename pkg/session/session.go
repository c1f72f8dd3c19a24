// Package session runs chat turns: it consumes a streamed chat-completions
// response, separates the reasoning channel from the answer channel, decides
// when the answer message materializes in the conversation, and finalizes the
// turn with a cleaned reasoning trace.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skalacodebr/chatgpt-skala/pkg/conversation"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm/provider"
	"github.com/skalacodebr/chatgpt-skala/pkg/reasoning"
	"github.com/skalacodebr/chatgpt-skala/pkg/sse"
)

// ErrTurnInProgress is returned by Send while a previous turn is still
// streaming. One turn at a time.
var ErrTurnInProgress = errors.New("a turn is already in progress")

// Streamer opens the upstream completion stream for a turn.
// *chat.Client satisfies this; tests substitute fixtures.
type Streamer interface {
	Stream(ctx context.Context, messages []llm.Message) (io.ReadCloser, error)
}

// state tracks where the turn's accumulator is.
type state int

const (
	stateNoAnswerYet state = iota
	stateStreamingAnswer
	stateFinalized
)

// turn is the per-turn context object. It is created inside Send and
// discarded when the turn finalizes; nothing about a turn lives on the
// Session itself except the loading flag.
type turn struct {
	id            string
	state         state
	reasoningBuf  []byte
	contentLen    int
	answerIndex   int
	answerCreated bool
	finishReason  string
	usage         *llm.Usage
}

// Session owns one conversation and runs one turn at a time against it.
type Session struct {
	conv     *conversation.Conversation
	streamer Streamer
	provider provider.Provider
	logger   *zap.Logger

	mu      sync.Mutex
	loading bool
}

// New creates a session over the given conversation.
func New(conv *conversation.Conversation, streamer Streamer, prov provider.Provider, logger *zap.Logger) *Session {
	return &Session{
		conv:     conv,
		streamer: streamer,
		provider: prov,
		logger:   logger,
	}
}

// Conversation returns the conversation this session appends to.
func (s *Session) Conversation() *conversation.Conversation {
	return s.conv
}

// Loading reports whether a turn is currently streaming.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Send runs one full turn: it appends the user message, opens the upstream
// stream, and returns a channel of cumulative Update snapshots. The channel
// is closed when the turn ends; the last update before close is either
// PhaseFinal or PhaseFailed.
//
// Context cancellation is not a failure: the turn finalizes with whatever
// was buffered so far (reasoning cleaned, answer message completed) and no
// error message is appended. Transport and read errors abort the turn and
// append an inline error message to the conversation instead.
//
// Send returns ErrTurnInProgress while a previous turn is still streaming.
func (s *Session) Send(ctx context.Context, prompt string) (<-chan Update, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrTurnInProgress
	}
	s.loading = true
	s.mu.Unlock()

	s.conv.Append(conversation.Message{
		Content:    prompt,
		IsUser:     true,
		IsComplete: true,
	})

	updates := make(chan Update, updateBufferSize)

	go s.run(ctx, prompt, updates)

	return updates, nil
}

// run is the single sequential reader loop for one turn.
func (s *Session) run(ctx context.Context, prompt string, updates chan Update) {
	defer close(updates)
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	t := &turn{
		id:          uuid.NewString(),
		state:       stateNoAnswerYet,
		answerIndex: -1,
	}

	start := time.Now()

	s.logger.Debug("starting turn",
		zap.String("turn_id", t.id),
		zap.String("provider", s.provider.Name()),
		zap.Int("prompt_len", len(prompt)),
	)

	body, err := s.streamer.Stream(ctx, []llm.Message{llm.NewUserMessage(prompt)})
	if err != nil {
		if canceled(err) {
			s.finalize(ctx, t, updates, time.Since(start))
			return
		}
		s.fail(ctx, t, updates, err)
		return
	}
	defer func() { _ = body.Close() }()

	r := sse.NewReader(body)

	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if canceled(err) || ctx.Err() != nil {
				s.logger.Debug("turn canceled mid-stream, finalizing partial state",
					zap.String("turn_id", t.id),
				)
				break
			}
			s.fail(ctx, t, updates, err)
			return
		}

		chunk, perr := s.provider.ParseStreamChunk([]byte(ev.Data))
		if perr != nil {
			// A single malformed event never aborts the stream.
			s.logger.Debug("skipping malformed stream event",
				zap.String("turn_id", t.id),
				zap.Error(perr),
				zap.String("data", ev.Data),
			)
			continue
		}
		if chunk == nil {
			continue
		}

		s.apply(t, chunk, updates)

		if chunk.Finished {
			// Terminal signal observed: stop reading promptly. The body
			// is closed without draining the remaining events.
			break
		}
	}

	s.finalize(ctx, t, updates, time.Since(start))
}

// apply folds one classified chunk into the turn. Reasoning deltas are
// accepted in both pre- and post-answer states since the channels can
// interleave; the first content delta materializes the answer message.
func (s *Session) apply(t *turn, chunk *llm.StreamChunk, updates chan<- Update) {
	if chunk.ReasoningDelta != "" {
		t.reasoningBuf = append(t.reasoningBuf, chunk.ReasoningDelta...)
	}

	if chunk.ContentDelta != "" {
		if !t.answerCreated {
			t.answerIndex = s.conv.Append(conversation.Message{
				IsUser:        false,
				ShowReasoning: true,
			})
			t.answerCreated = true
			t.state = stateStreamingAnswer
		}

		if err := s.conv.AppendContent(t.answerIndex, chunk.ContentDelta); err != nil {
			s.logger.Warn("appending content delta",
				zap.String("turn_id", t.id),
				zap.Error(err),
			)
		} else {
			t.contentLen += len(chunk.ContentDelta)
		}
	}

	if chunk.Usage != nil {
		t.usage = chunk.Usage
	}
	if chunk.FinishReason != "" {
		t.finishReason = chunk.FinishReason
	}

	publish(updates, s.snapshot(t))
}

// finalize transitions the turn to its terminal state: the reasoning buffer
// is cleaned and attached to the answer message, which becomes immutable.
//
// A turn that produced reasoning but never a content delta still surfaces an
// answer message (empty content, reasoning attached) so the reasoning is
// never silently dropped. A turn that produced neither channel appends
// nothing.
func (s *Session) finalize(ctx context.Context, t *turn, updates chan<- Update, elapsed time.Duration) {
	cleaned := reasoning.Clean(string(t.reasoningBuf))

	if !t.answerCreated && cleaned != "" {
		t.answerIndex = s.conv.Append(conversation.Message{
			IsUser:        false,
			ShowReasoning: true,
		})
		t.answerCreated = true
	}

	if t.answerCreated {
		if err := s.conv.Finalize(t.answerIndex, cleaned); err != nil {
			s.logger.Warn("finalizing answer message",
				zap.String("turn_id", t.id),
				zap.Error(err),
			)
		}
	}

	t.state = stateFinalized

	fields := []zap.Field{
		zap.String("turn_id", t.id),
		zap.Duration("duration", elapsed),
		zap.String("finish_reason", t.finishReason),
		zap.Int("content_len", t.contentLen),
		zap.Int("reasoning_len", len(cleaned)),
	}
	if t.usage != nil {
		fields = append(fields,
			zap.Int("prompt_tokens", t.usage.PromptTokens),
			zap.Int("completion_tokens", t.usage.CompletionTokens),
			zap.Int("total_tokens", t.usage.TotalTokens),
		)
	}
	s.logger.Debug("turn finalized", fields...)

	final := s.snapshot(t)
	final.Phase = PhaseFinal
	final.Reasoning = cleaned
	s.deliver(ctx, updates, final)
}

// fail aborts the turn: an inline error message joins the conversation and
// any in-progress answer message is left as-is, incomplete.
func (s *Session) fail(ctx context.Context, t *turn, updates chan<- Update, err error) {
	s.logger.Error("turn failed",
		zap.String("turn_id", t.id),
		zap.Error(err),
	)

	s.conv.Append(conversation.Message{
		Content:    "Error: " + err.Error(),
		IsUser:     false,
		IsComplete: true,
	})

	u := s.snapshot(t)
	u.Phase = PhaseFailed
	u.Err = err
	s.deliver(ctx, updates, u)
}

// snapshot builds a cumulative Update from the turn's current buffers.
func (s *Session) snapshot(t *turn) Update {
	u := Update{
		Phase:     PhaseReasoning,
		Reasoning: string(t.reasoningBuf),
		Usage:     t.usage,
	}

	if t.answerCreated {
		u.Phase = PhaseAnswering
		if msg, err := s.conv.Message(t.answerIndex); err == nil {
			u.Content = msg.Content
		}
	}

	return u
}

// deliver sends a terminal update, waiting for the consumer unless the turn
// context is already gone.
func (s *Session) deliver(ctx context.Context, updates chan<- Update, u Update) {
	select {
	case updates <- u:
	case <-ctx.Done():
	}
}

// canceled reports whether err is a context cancellation or deadline.
func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
