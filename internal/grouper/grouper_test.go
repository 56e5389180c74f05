package grouper

import (
	"testing"
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

const maxGap = 120 * time.Second

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func textItem(id, sec int64, text string) feed.Item {
	return feed.Item{ID: id, Time: at(sec), Text: text}
}

func mediaItem(id, sec int64, groupKey *int64) feed.Item {
	return feed.Item{
		ID:       id,
		Time:     at(sec),
		Media:    []feed.MediaRef{{FileID: "f", Kind: feed.MediaPhoto, MimeType: "image/jpeg"}},
		GroupKey: groupKey,
	}
}

func key(v int64) *int64 { return &v }

func TestGroup_TimeWindow(t *testing.T) {
	tests := []struct {
		name  string
		items []feed.Item
		want  [][]int64 // member ids per candidate
	}{
		{
			name:  "empty stream",
			items: nil,
			want:  nil,
		},
		{
			name:  "single item",
			items: []feed.Item{textItem(1, 0, "hello news")},
			want:  [][]int64{{1}},
		},
		{
			name: "gap exactly at threshold joins",
			items: []feed.Item{
				textItem(1, 0, "first"),
				textItem(2, 120, "second"),
			},
			want: [][]int64{{1, 2}},
		},
		{
			name: "one second over threshold splits",
			items: []feed.Item{
				textItem(1, 0, "first"),
				textItem(2, 121, "second"),
			},
			want: [][]int64{{1}, {2}},
		},
		{
			name: "chain policy spans beyond the threshold in total",
			items: []feed.Item{
				textItem(1, 0, "a"),
				textItem(2, 100, "b"),
				textItem(3, 200, "c"),
				textItem(4, 300, "d"),
			},
			want: [][]int64{{1, 2, 3, 4}},
		},
		{
			name: "ineligible items never start or extend",
			items: []feed.Item{
				textItem(1, 0, ""),
				textItem(2, 10, "real text"),
				textItem(3, 20, "   "),
				textItem(4, 30, "more text"),
			},
			want: [][]int64{{2, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.items, maxGap)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if len(c.MemberIDs) != len(tt.want[i]) {
					t.Fatalf("candidate %d: got members %v, want %v", i, c.MemberIDs, tt.want[i])
				}
				for j, id := range c.MemberIDs {
					if id != tt.want[i][j] {
						t.Errorf("candidate %d member %d: got %d, want %d", i, j, id, tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestGroup_GroupKeyOverridesTimeWindow(t *testing.T) {
	items := []feed.Item{
		mediaItem(1, 0, key(7)),
		mediaItem(2, 1000, key(7)), // far past the window, same album
	}

	got := Group(items, maxGap)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if len(got[0].MemberIDs) != 2 {
		t.Fatalf("got members %v, want both items together", got[0].MemberIDs)
	}
}

func TestGroup_DistinctGroupKeysStillUseTimeWindow(t *testing.T) {
	items := []feed.Item{
		mediaItem(1, 0, key(7)),
		mediaItem(2, 1000, key(8)),
	}

	got := Group(items, maxGap)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
}

func TestGroup_Partition(t *testing.T) {
	items := []feed.Item{
		textItem(1, 0, "alpha"),
		mediaItem(2, 30, key(7)),
		textItem(3, 500, "beta"),
		mediaItem(4, 510, nil),
		textItem(5, 2000, "gamma"),
	}

	got := Group(items, maxGap)

	var seen []int64
	for _, c := range got {
		if c.End.Before(c.Start) {
			t.Errorf("candidate %v: end %v before start %v", c.MemberIDs, c.End, c.Start)
		}
		seen = append(seen, c.MemberIDs...)
	}

	// Every eligible item appears exactly once, in order.
	want := []int64{1, 2, 3, 4, 5}
	if len(seen) != len(want) {
		t.Fatalf("partition covers %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("partition covers %v, want %v", seen, want)
		}
	}

	// Candidates are chronologically ordered and non-overlapping.
	for i := 1; i < len(got); i++ {
		if got[i].Start.Before(got[i-1].End) {
			t.Errorf("candidate %d starts before candidate %d ends", i, i-1)
		}
	}
}

func TestGroup_AbsorbSemantics(t *testing.T) {
	items := []feed.Item{
		{ID: 1, Time: at(0), Text: "first paragraph"},
		{ID: 2, Time: at(30), Text: "second paragraph", GroupKey: key(9),
			Media: []feed.MediaRef{{FileID: "m1", Kind: feed.MediaPhoto}}},
	}

	got := Group(items, maxGap)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}

	c := got[0]
	if c.Body != "first paragraph\n\nsecond paragraph" {
		t.Errorf("body = %q, want paragraph-joined text", c.Body)
	}
	if len(c.Media) != 1 {
		t.Errorf("media = %d entries, want 1", len(c.Media))
	}
	if c.GroupKey == nil || *c.GroupKey != 9 {
		t.Errorf("group key not adopted from the second member")
	}
	if !c.End.Equal(at(30)) || !c.Start.Equal(at(0)) {
		t.Errorf("start/end = %v/%v, want 0/30", c.Start, c.End)
	}
}
