// Package telegram reads channel history through the MTProto gateway
// service. The gateway owns sessions and transport; this package only speaks
// its HTTP API.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// Channel is a resolved channel handle.
type Channel struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Title    string `json:"title"`
}

// Client is the message-source collaborator.
type Client interface {
	GetChannel(ctx context.Context, username string) (Channel, error)
	History(ctx context.Context, channelID int64, limit int) ([]feed.Item, error)
	Download(ctx context.Context, ref feed.MediaRef, destPath string) error
}

// GatewayClient talks to the gateway over HTTP JSON.
type GatewayClient struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

var _ Client = (*GatewayClient)(nil)

// NewGatewayClient builds a client. The limiter keeps request bursts within
// what the gateway (and Telegram behind it) tolerates.
func NewGatewayClient(baseURL, token string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// GetChannel resolves a channel username to its handle.
func (c *GatewayClient) GetChannel(ctx context.Context, username string) (Channel, error) {
	var ch Channel
	err := c.getJSON(ctx, "/channels/"+url.PathEscape(username), nil, &ch)
	if err != nil {
		return Channel{}, fmt.Errorf("resolve channel %s: %w", username, err)
	}
	return ch, nil
}

// gatewayMessage is the wire shape of one history entry.
type gatewayMessage struct {
	ID       int64  `json:"id"`
	Date     int64  `json:"date"`
	Text     string `json:"text"`
	GroupKey *int64 `json:"grouped_id,omitempty"`
	Media    []struct {
		FileID   string `json:"file_id"`
		Kind     string `json:"kind"`
		MimeType string `json:"mime_type"`
		FileName string `json:"file_name"`
		Size     int64  `json:"size"`
	} `json:"media,omitempty"`
}

// History returns up to limit most recent messages, newest first.
func (c *GatewayClient) History(ctx context.Context, channelID int64, limit int) ([]feed.Item, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var msgs []gatewayMessage
	path := fmt.Sprintf("/channels/%d/messages", channelID)
	if err := c.getJSON(ctx, path, params, &msgs); err != nil {
		return nil, fmt.Errorf("fetch history for channel %d: %w", channelID, err)
	}

	items := make([]feed.Item, 0, len(msgs))
	for _, m := range msgs {
		item := feed.Item{
			ID:       m.ID,
			Time:     time.Unix(m.Date, 0).UTC(),
			Text:     m.Text,
			GroupKey: m.GroupKey,
		}
		for _, media := range m.Media {
			item.Media = append(item.Media, feed.MediaRef{
				FileID:   media.FileID,
				Kind:     feed.MediaKind(media.Kind),
				MimeType: media.MimeType,
				FileName: media.FileName,
				Size:     media.Size,
			})
		}
		items = append(items, item)
	}
	return items, nil
}

// Download streams the media payload to destPath.
func (c *GatewayClient) Download(ctx context.Context, ref feed.MediaRef, destPath string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, "/files/"+url.PathEscape(ref.FileID), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", ref.FileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("download %s: gateway status %d", ref.FileID, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("write staging file: %w", err)
	}
	return nil
}

func (c *GatewayClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *GatewayClient) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
