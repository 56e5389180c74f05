// Package gemini implements the optional AI oracles (classification,
// translation, title generation) on top of the Gemini API. Every oracle is
// allowed to fail; callers degrade instead of aborting.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// TextGenerator is the completion call the oracles are built on. Kept as an
// interface so tests can fake the model.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Client wraps the official Gemini SDK.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ TextGenerator = (*Client)(nil)

// NewClient builds a Gemini client. An empty apiKey returns
// feed.ErrOracleUnavailable so callers can run without the oracle.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, feed.ErrOracleUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model, timeout: timeout}, nil
}

// GenerateJSON sends a prompt and returns the model's JSON response text. The
// call is bounded by the configured hard timeout.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("get text from result: %w", err)
	}
	return text, nil
}

// extractJSON strips a markdown code fence if the model wrapped its answer in
// one despite the JSON response mime type.
func extractJSON(text string) string {
	fence := "```"
	start := strings.Index(text, fence+"json")
	skip := len(fence) + 4
	if start == -1 {
		start = strings.Index(text, fence)
		skip = len(fence)
	}
	if start == -1 {
		return strings.TrimSpace(text)
	}

	rest := text[start+skip:]
	if end := strings.Index(rest, fence); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
