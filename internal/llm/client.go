// Package llm talks to an OpenAI-compatible chat-completions endpoint. It
// owns the two prompt templates the pipeline uses and the decoding of the
// model's JSON replies.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/karston/phdscout/internal/config"
	"github.com/karston/phdscout/pkg/httpclient"
)

// maxOutputTokens caps every completion request.
const maxOutputTokens = 1024

// Completer abstracts the chat-completion API so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Completer backed by an OpenAI-compatible HTTP API. It is
// constructed once at startup and held for the process lifetime.
type Client struct {
	http    *httpclient.Client
	apiBase string
	apiKey  string
	model   string
}

var _ Completer = (*Client)(nil)

// NewClient builds a Client from the loaded configuration. Model calls
// carry no timeout; cancellation comes from the caller's context.
func NewClient(cfg *config.Config) (*Client, error) {
	hc, err := httpclient.New(httpclient.Config{MaxRedirects: 3})
	if err != nil {
		return nil, fmt.Errorf("creating model API client: %w", err)
	}

	return &Client{
		http:    hc,
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.ModelName,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Complete issues one non-streaming completion request with prompt as the
// sole user message and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("completion call: status %d: %s", resp.StatusCode, snippet(body))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

// snippet truncates an error body for log-friendly messages.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
