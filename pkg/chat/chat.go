// Package chat provides the HTTP client that opens streamed completions
// against an OpenAI-compatible chat-completions endpoint.
package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skalacodebr/chatgpt-skala/pkg/llm"
	"github.com/skalacodebr/chatgpt-skala/pkg/llm/provider"
)

const completionsPath = "/chat/completions"

// errorBodyLimit caps how much of a non-2xx response body is read into the
// returned error.
const errorBodyLimit = 4 * 1024

// Config holds the resolved settings for one client.
type Config struct {
	// BaseURL is the API root (e.g. "https://api.deepseek.com/v1");
	// the client appends /chat/completions.
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Model is the model name to request.
	Model string

	// Temperature is the sampling temperature.
	Temperature float64

	// ShowReasoning asks the endpoint to stream the reasoning channel.
	ShowReasoning bool

	// Timeout bounds the whole turn, connection to [DONE]. Zero means
	// no client-side timeout.
	Timeout time.Duration
}

// Client opens streamed chat completions. It satisfies session.Streamer.
type Client struct {
	cfg      Config
	provider provider.Provider
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a client for the given endpoint and wire format.
func NewClient(cfg Config, prov provider.Provider, logger *zap.Logger) *Client {
	return &Client{
		cfg:      cfg,
		provider: prov,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// Stream POSTs a streaming completion request and returns the raw SSE body
// for the caller to consume. A non-2xx response is a hard failure: the body
// is read for the error text and the turn never starts.
func (c *Client) Stream(ctx context.Context, messages []llm.Message) (io.ReadCloser, error) {
	temp := c.cfg.Temperature
	body, err := c.provider.MarshalRequest(&llm.ChatRequest{
		Model:         c.cfg.Model,
		Messages:      messages,
		Temperature:   &temp,
		Stream:        true,
		ShowReasoning: c.cfg.ShowReasoning,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + completionsPath

	c.logger.Debug("sending chat request",
		zap.String("url", url),
		zap.String("model", c.cfg.Model),
		zap.Int("message_count", len(messages)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("chat endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return resp.Body, nil
}
