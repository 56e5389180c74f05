// Package publisher upserts finished posts into the site API.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// PublishError marks a failed upsert. The pipeline logs it and moves on; the
// post is not retried within the cycle.
type PublishError struct {
	PostID     string
	StatusCode int
	Err        error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish %s: %v", e.PostID, e.Err)
	}
	return fmt.Sprintf("publish %s: api status %d", e.PostID, e.StatusCode)
}

func (e *PublishError) Unwrap() error { return e.Err }

// APIPublisher PUTs the full post document to the upsert endpoint. The
// target keys records by post id, so re-sending the same post is safe.
type APIPublisher struct {
	baseURL string
	client  *http.Client
}

// New builds a publisher. baseURL contains an [id] placeholder.
func New(baseURL string, timeout time.Duration) *APIPublisher {
	return &APIPublisher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Publish upserts one post. 200 and 201 are success; anything else is a
// PublishError.
func (p *APIPublisher) Publish(ctx context.Context, post feed.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return &PublishError{PostID: post.ID, Err: fmt.Errorf("marshal post: %w", err)}
	}

	target := strings.ReplaceAll(p.baseURL, "[id]", post.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return &PublishError{PostID: post.ID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return &PublishError{PostID: post.ID, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &PublishError{PostID: post.ID, StatusCode: resp.StatusCode}
	}
	return nil
}
