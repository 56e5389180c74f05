package feed

import (
	"strings"
	"time"
)

// MediaKind distinguishes the two payload shapes the gateway hands back.
type MediaKind string

const (
	MediaPhoto    MediaKind = "photo"
	MediaDocument MediaKind = "document"
	MediaVideo    MediaKind = "video"
)

// BodyVersion is the editor schema version the site API expects.
const BodyVersion = "2.31.0"

// MediaRef points at a retrievable media payload attached to a message.
type MediaRef struct {
	FileID   string    `json:"file_id"`
	Kind     MediaKind `json:"kind"`
	MimeType string    `json:"mime_type"`
	FileName string    `json:"file_name,omitempty"`
	Size     int64     `json:"size,omitempty"`
}

// IsVideo reports whether the reference is a video, either natively or as a
// document with a video mime type.
func (m MediaRef) IsVideo() bool {
	return m.Kind == MediaVideo || strings.HasPrefix(m.MimeType, "video/")
}

// Item is one raw channel message as returned by the gateway.
type Item struct {
	ID       int64      `json:"id"`
	Time     time.Time  `json:"time"`
	Text     string     `json:"text"`
	Media    []MediaRef `json:"media,omitempty"`
	GroupKey *int64     `json:"group_key,omitempty"`
}

// Eligible reports whether the item can start or extend a candidate.
// Items with neither text nor media are dropped before grouping.
func (it Item) Eligible() bool {
	return strings.TrimSpace(it.Text) != "" || len(it.Media) > 0
}

// PostCandidate is an in-flight cluster of related messages.
type PostCandidate struct {
	MemberIDs []int64
	Body      string
	Start     time.Time
	End       time.Time
	Media     []MediaRef
	GroupKey  *int64
}

// NewCandidate seeds a candidate from its first member.
func NewCandidate(it Item) *PostCandidate {
	c := &PostCandidate{
		MemberIDs: []int64{it.ID},
		Start:     it.Time,
		End:       it.Time,
		GroupKey:  it.GroupKey,
	}
	if text := strings.TrimSpace(it.Text); text != "" {
		c.Body = text
	}
	if len(it.Media) > 0 {
		c.Media = append(c.Media, it.Media...)
	}
	return c
}

// Absorb adds an item to the candidate: append the text as a new paragraph,
// concatenate media, advance the end time and adopt the group key if the
// candidate does not have one yet. End never moves backwards.
func (c *PostCandidate) Absorb(it Item) {
	c.MemberIDs = append(c.MemberIDs, it.ID)

	if text := strings.TrimSpace(it.Text); text != "" {
		if c.Body != "" {
			c.Body += "\n\n" + text
		} else {
			c.Body = text
		}
	}
	c.Media = append(c.Media, it.Media...)

	if it.Time.After(c.End) {
		c.End = it.Time
	}
	if c.GroupKey == nil && it.GroupKey != nil {
		c.GroupKey = it.GroupKey
	}
}

// LastMemberID returns the id of the newest member.
func (c *PostCandidate) LastMemberID() int64 {
	return c.MemberIDs[len(c.MemberIDs)-1]
}

// Paragraphs splits the body into its non-blank paragraphs in order.
func (c *PostCandidate) Paragraphs() []string {
	var out []string
	for _, line := range strings.Split(c.Body, "\n") {
		if p := strings.TrimSpace(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasVideo reports whether any attached media is video-typed.
func (c *PostCandidate) HasVideo() bool {
	for _, m := range c.Media {
		if m.IsVideo() {
			return true
		}
	}
	return false
}

// BlockData carries the text payload of a body block, with an optional
// English translation attached by the enricher.
type BlockData struct {
	Text           string  `json:"text"`
	TranslatedText *string `json:"translatedText,omitempty"`
}

// BodyBlock is one paragraph block of the final post body.
type BodyBlock struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data BlockData `json:"data"`
}

// BodyStructure is the editor document the site API stores as the post body.
type BodyStructure struct {
	Time    int64       `json:"time"`
	Blocks  []BodyBlock `json:"blocks"`
	Version string      `json:"version"`
}

// GalleryStatus marks the outcome of materializing one media item.
type GalleryStatus string

const (
	GalleryComplete GalleryStatus = "complete"
	GalleryFailed   GalleryStatus = "failed"
)

// GalleryImage is one materialized media entry of a post. A failed entry
// keeps its error but does not invalidate the post.
type GalleryImage struct {
	URL      string        `json:"url"`
	Name     string        `json:"name"`
	Size     int64         `json:"size"`
	MimeType string        `json:"type"`
	Status   GalleryStatus `json:"status"`
	Error    string        `json:"error"`
}

// PostMetadata records where the post came from.
type PostMetadata struct {
	ChannelID           int64   `json:"channel_id"`
	MessageIDs          []int64 `json:"telegram_message_ids"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	MediaCountTotal     int     `json:"media_count_total"`
	MediaCountProcessed int     `json:"media_count_processed"`
}

// Post is the finalized, enriched artifact. Once built it is immutable and
// keyed by ID for idempotent upsert downstream.
type Post struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	TitleEnglish  string         `json:"titleEnglish,omitempty"`
	Slug          string         `json:"slug"`
	Body          BodyStructure  `json:"body"`
	ImageURL      string         `json:"imageUrl"`
	GalleryImages []GalleryImage `json:"galleryImages"`
	Metadata      PostMetadata   `json:"metadata"`
}
