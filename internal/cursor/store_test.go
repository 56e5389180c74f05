package cursor

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "cursor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWatermark_UnknownChannelIsZero(t *testing.T) {
	s := openTestStore(t)

	last, err := s.Watermark(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestAdvance_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Advance(ctx, "ecta-news", 40, now))
	last, err := s.Watermark(ctx, "ecta-news")
	require.NoError(t, err)
	assert.Equal(t, int64(40), last)

	// Forward moves stick.
	require.NoError(t, s.Advance(ctx, "ecta-news", 55, now))
	last, err = s.Watermark(ctx, "ecta-news")
	require.NoError(t, err)
	assert.Equal(t, int64(55), last)

	// A replayed older id never moves the watermark back.
	require.NoError(t, s.Advance(ctx, "ecta-news", 41, now))
	last, err = s.Watermark(ctx, "ecta-news")
	require.NoError(t, err)
	assert.Equal(t, int64(55), last)
}

func TestAdvance_ChannelsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Advance(ctx, "alpha", 100, time.Now()))
	last, err := s.Watermark(ctx, "beta")
	require.NoError(t, err)
	assert.Zero(t, last, "another channel's advance must not leak")
}

func TestRecordPost_IdempotentAndSlugLookup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	post := feed.Post{ID: "abc123def456", Slug: "export-volumes-rise"}
	require.NoError(t, s.RecordPost(ctx, "ecta-news", post, 7))
	require.NoError(t, s.RecordPost(ctx, "ecta-news", post, 7), "re-recording the same id must be a no-op")

	taken, err := s.SlugTaken(ctx, "export-volumes-rise")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.SlugTaken(ctx, "some-other-slug")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestOpen_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cursor.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Advance(ctx, "ecta-news", 99, time.Now()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	last, err := s.Watermark(ctx, "ecta-news")
	require.NoError(t, err)
	assert.Equal(t, int64(99), last)
}
