package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

type fakeClient struct {
	history  []feed.Item
	err      error
	gotLimit int
}

func (f *fakeClient) GetChannel(ctx context.Context, username string) (Channel, error) {
	return Channel{}, errors.New("not implemented")
}

func (f *fakeClient) History(ctx context.Context, channelID int64, limit int) ([]feed.Item, error) {
	f.gotLimit = limit
	return f.history, f.err
}

func (f *fakeClient) Download(ctx context.Context, ref feed.MediaRef, destPath string) error {
	return errors.New("not implemented")
}

func at(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func TestPoll_ChronologicalWindow(t *testing.T) {
	// Gateway order: newest first.
	client := &fakeClient{history: []feed.Item{
		{ID: 4, Time: at(400), Text: "newest"},
		{ID: 3, Time: at(300), Text: "middle"},
		{ID: 2, Time: at(200), Text: "oldest in window"},
		{ID: 1, Time: at(100), Text: "before cutoff"},
	}}

	p := NewPoller(client, 100)
	items, err := p.Poll(context.Background(), 42, at(150))
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if client.gotLimit != 100 {
		t.Errorf("scan limit = %d, want 100", client.gotLimit)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, wantID := range []int64{2, 3, 4} {
		if items[i].ID != wantID {
			t.Errorf("items[%d].ID = %d, want %d (chronological order)", i, items[i].ID, wantID)
		}
	}
}

func TestPoll_StopsAtCutoff(t *testing.T) {
	// An old item in the middle ends the scan even if newer items follow it
	// in the slice; the walk trusts the newest-first ordering.
	client := &fakeClient{history: []feed.Item{
		{ID: 3, Time: at(300), Text: "in window"},
		{ID: 1, Time: at(100), Text: "past cutoff"},
		{ID: 2, Time: at(200), Text: "unreached"},
	}}

	p := NewPoller(client, 50)
	items, err := p.Poll(context.Background(), 42, at(150))
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 {
		t.Errorf("items = %+v, want only id 3", items)
	}
}

func TestPoll_DropsIneligible(t *testing.T) {
	client := &fakeClient{history: []feed.Item{
		{ID: 3, Time: at(300), Text: "   "},
		{ID: 2, Time: at(250), Media: []feed.MediaRef{{FileID: "m", Kind: feed.MediaPhoto}}},
		{ID: 1, Time: at(200), Text: "has text"},
	}}

	p := NewPoller(client, 50)
	items, err := p.Poll(context.Background(), 42, at(100))
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (blank item dropped)", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("items = %+v", items)
	}
}

func TestPoll_PropagatesError(t *testing.T) {
	client := &fakeClient{err: errors.New("gateway down")}
	p := NewPoller(client, 50)

	if _, err := p.Poll(context.Background(), 42, at(0)); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestPoll_EmptyHistory(t *testing.T) {
	p := NewPoller(&fakeClient{}, 50)
	items, err := p.Poll(context.Background(), 42, at(0))
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want none", len(items))
	}
}
