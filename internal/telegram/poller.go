package telegram

import (
	"context"
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// Poller fetches the recent history window for one channel.
type Poller struct {
	client    Client
	scanLimit int
}

// NewPoller builds a poller with a bounded backward scan depth.
func NewPoller(client Client, scanLimit int) *Poller {
	return &Poller{client: client, scanLimit: scanLimit}
}

// Poll returns the channel's items newer than cutoff, oldest first, with
// ineligible (no text, no media) items dropped. The scan never goes deeper
// than the configured limit, so a bursty channel cannot trigger an unbounded
// backward walk.
func (p *Poller) Poll(ctx context.Context, channelID int64, cutoff time.Time) ([]feed.Item, error) {
	history, err := p.client.History(ctx, channelID, p.scanLimit)
	if err != nil {
		return nil, err
	}

	// History arrives newest first; stop at the first item past the cutoff.
	var window []feed.Item
	for _, item := range history {
		if item.Time.Before(cutoff) {
			break
		}
		if !item.Eligible() {
			continue
		}
		window = append(window, item)
	}

	// Reverse into chronological order for the grouper.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}
	return window, nil
}
