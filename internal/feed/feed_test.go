package feed

import (
	"regexp"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]+$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID(PostIDLength)
		if len(id) != PostIDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), PostIDLength)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("id %q contains characters outside the alphabet", id)
		}
		if seen[id] {
			t.Fatalf("id %q repeated", id)
		}
		seen[id] = true
	}
}

func TestCandidate_Paragraphs(t *testing.T) {
	c := &PostCandidate{Body: "first\n\n  second  \n\n\nthird"}
	got := c.Paragraphs()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCandidate_AbsorbMediaOnly(t *testing.T) {
	c := NewCandidate(Item{ID: 1, Time: time.Unix(0, 0), Text: "lead"})
	c.Absorb(Item{ID: 2, Time: time.Unix(30, 0), Media: []MediaRef{{FileID: "m", Kind: MediaPhoto}}})

	if c.Body != "lead" {
		t.Errorf("a media-only member must not alter the body, got %q", c.Body)
	}
	if len(c.Media) != 1 {
		t.Errorf("media not absorbed")
	}
	if c.LastMemberID() != 2 {
		t.Errorf("last member = %d", c.LastMemberID())
	}
}

func TestMediaRef_IsVideo(t *testing.T) {
	cases := []struct {
		ref  MediaRef
		want bool
	}{
		{MediaRef{Kind: MediaVideo}, true},
		{MediaRef{Kind: MediaDocument, MimeType: "video/mp4"}, true},
		{MediaRef{Kind: MediaDocument, MimeType: "application/pdf"}, false},
		{MediaRef{Kind: MediaPhoto, MimeType: "image/jpeg"}, false},
	}
	for _, tc := range cases {
		if got := tc.ref.IsVideo(); got != tc.want {
			t.Errorf("IsVideo(%+v) = %v, want %v", tc.ref, got, tc.want)
		}
	}
}

func TestItem_Eligible(t *testing.T) {
	if (Item{Text: "   "}).Eligible() {
		t.Error("whitespace-only item must be ineligible")
	}
	if !(Item{Media: []MediaRef{{FileID: "m"}}}).Eligible() {
		t.Error("media-only item must be eligible")
	}
}
