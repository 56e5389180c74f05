// Package enricher turns accepted candidates into finished posts: id, title,
// slug, body blocks with optional translations, and materialized media.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/bunny"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/gemini"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/slug"
)

// Translator is the optional batched translation oracle.
type Translator interface {
	TranslateBatch(ctx context.Context, paragraphs []string) ([]*string, error)
}

// Titler is the optional headline oracle.
type Titler interface {
	Title(ctx context.Context, lead string) (gemini.TitleResult, error)
}

// Downloader stages media bytes locally.
type Downloader interface {
	Download(ctx context.Context, ref feed.MediaRef, destPath string) error
}

// SlugRegistry answers whether a slug was issued in an earlier run.
type SlugRegistry interface {
	SlugTaken(ctx context.Context, slug string) (bool, error)
}

// Enricher builds posts. Every sub-step fails independently: a broken oracle
// or a failed upload degrades the post, it never drops it.
type Enricher struct {
	cfg        config.Pipeline
	downloader Downloader
	store      bunny.Store
	translator Translator
	titler     Titler
	registry   SlugRegistry
	clock      func() time.Time

	// Slugs issued during this run, so two same-title posts in one cycle
	// cannot collide before either is persisted.
	issued map[string]bool
}

// New builds an enricher. store, translator, titler and registry may be nil;
// a nil store keeps media at their staged local paths (dry-run mode).
func New(cfg config.Pipeline, downloader Downloader, store bunny.Store, translator Translator, titler Titler, registry SlugRegistry, clock func() time.Time) *Enricher {
	if clock == nil {
		clock = time.Now
	}
	return &Enricher{
		cfg:        cfg,
		downloader: downloader,
		store:      store,
		translator: translator,
		titler:     titler,
		registry:   registry,
		clock:      clock,
		issued:     map[string]bool{},
	}
}

// Enrich produces the final post for one candidate.
func (e *Enricher) Enrich(ctx context.Context, channel config.Channel, channelID int64, c *feed.PostCandidate) feed.Post {
	postID := feed.NewID(feed.PostIDLength)
	paragraphs := c.Paragraphs()

	title, titleEnglish := e.buildTitle(ctx, paragraphs)
	postSlug := ""
	if title != "" {
		postSlug = e.uniqueSlug(ctx, slug.Generate(title, postID, e.cfg.SlugMaxLength))
	}

	blocks := e.buildBlocks(ctx, paragraphs)
	gallery := e.materializeMedia(ctx, postID, c)

	thumbnail := channel.DefaultThumbnail
	for _, img := range gallery {
		if img.Status == feed.GalleryComplete {
			thumbnail = img.URL
			break
		}
	}

	return feed.Post{
		ID:           postID,
		Title:        title,
		TitleEnglish: titleEnglish,
		Slug:         postSlug,
		Body: feed.BodyStructure{
			Time:    e.clock().UnixMilli(),
			Blocks:  blocks,
			Version: feed.BodyVersion,
		},
		ImageURL:      thumbnail,
		GalleryImages: gallery,
		Metadata: feed.PostMetadata{
			ChannelID:           channelID,
			MessageIDs:          c.MemberIDs,
			StartDate:           c.Start.UTC().Format(time.RFC3339),
			EndDate:             c.End.UTC().Format(time.RFC3339),
			MediaCountTotal:     len(c.Media),
			MediaCountProcessed: len(gallery),
		},
	}
}

// buildTitle takes the first non-blank paragraph, upgraded by the title
// oracle when one is configured. Oracle failure falls back silently.
func (e *Enricher) buildTitle(ctx context.Context, paragraphs []string) (string, string) {
	if len(paragraphs) == 0 {
		return "", ""
	}
	lead := paragraphs[0]

	if e.titler != nil {
		result, err := e.titler.Title(ctx, lead)
		if err == nil {
			return result.Title, result.TitleEnglish
		}
		var oerr *feed.OracleError
		if errors.As(err, &oerr) {
			logrus.WithError(err).Warn("title oracle failed, using lead paragraph")
		}
	}
	return lead, ""
}

func (e *Enricher) uniqueSlug(ctx context.Context, base string) string {
	s := slug.EnsureUnique(base, func(candidate string) bool {
		if e.issued[candidate] {
			return true
		}
		if e.registry == nil {
			return false
		}
		taken, err := e.registry.SlugTaken(ctx, candidate)
		if err != nil {
			logrus.WithError(err).Warn("slug registry lookup failed")
			return false
		}
		return taken
	})
	e.issued[s] = true
	return s
}

// buildBlocks creates one paragraph block per non-blank paragraph, with
// translations from a single batched oracle call. Oracle failure leaves
// every translation nil.
func (e *Enricher) buildBlocks(ctx context.Context, paragraphs []string) []feed.BodyBlock {
	if len(paragraphs) == 0 {
		return nil
	}

	translations := make([]*string, len(paragraphs))
	if e.translator != nil {
		var err error
		translations, err = e.translator.TranslateBatch(ctx, paragraphs)
		if err != nil {
			logrus.WithError(err).Warn("translation failed, publishing without translations")
		}
	}

	blocks := make([]feed.BodyBlock, 0, len(paragraphs))
	for i, p := range paragraphs {
		blocks = append(blocks, feed.BodyBlock{
			ID:   feed.NewID(feed.PostIDLength),
			Type: "paragraph",
			Data: feed.BlockData{Text: p, TranslatedText: translations[i]},
		})
	}
	return blocks
}

// materializeMedia stages and uploads at most MaxImagesPerPost media items.
// A failed item is recorded as failed and does not abort its siblings; the
// staged file is removed whatever the outcome.
func (e *Enricher) materializeMedia(ctx context.Context, postID string, c *feed.PostCandidate) []feed.GalleryImage {
	refs := c.Media
	if len(refs) > e.cfg.MaxImagesPerPost {
		refs = refs[:e.cfg.MaxImagesPerPost]
	}

	var gallery []feed.GalleryImage
	for _, ref := range refs {
		gallery = append(gallery, e.materializeOne(ctx, postID, c, ref))
	}
	return gallery
}

func (e *Enricher) materializeOne(ctx context.Context, postID string, c *feed.PostCandidate, ref feed.MediaRef) feed.GalleryImage {
	name := ref.FileName
	if name == "" {
		name = fmt.Sprintf("photo_%s.jpg", c.Start.UTC().Format("2006-01-02_15-04-05"))
	}

	entry := feed.GalleryImage{
		Name:     name,
		Size:     ref.Size,
		MimeType: mimeTypeOf(ref),
		Status:   feed.GalleryFailed,
	}

	staged := filepath.Join(e.cfg.StagingDir, fmt.Sprintf("%s_%s_%s", postID, feed.NewID(4), name))
	if err := e.downloader.Download(ctx, ref, staged); err != nil {
		entry.Error = err.Error()
		logrus.WithError(err).WithField("file_id", ref.FileID).Warn("media download failed")
		return entry
	}
	if info, err := os.Stat(staged); err == nil {
		entry.Size = info.Size()
	}

	if e.store == nil {
		// Dry run: keep the staged file and point at it.
		abs, err := filepath.Abs(staged)
		if err != nil {
			abs = staged
		}
		entry.URL = abs
		entry.Status = feed.GalleryComplete
		return entry
	}
	defer os.Remove(staged)

	url, err := e.store.Upload(ctx, staged, name)
	if err != nil {
		entry.Error = err.Error()
		logrus.WithError(err).WithField("name", name).Warn("media upload failed")
		return entry
	}

	entry.URL = url
	entry.Status = feed.GalleryComplete
	return entry
}

func mimeTypeOf(ref feed.MediaRef) string {
	if ref.MimeType != "" {
		return ref.MimeType
	}
	if ref.Kind == feed.MediaPhoto {
		return "image/jpeg"
	}
	return "application/octet-stream"
}
