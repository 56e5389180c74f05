// Package app wires the ingestion stages into the per-cycle pipeline and the
// scheduler that drives it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/grouper"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/telegram"
)

// ErrNotConfigured is returned when the pipeline is missing required
// dependencies.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// Clock supplies the current time (swapped out in tests).
type Clock func() time.Time

// Resolver turns a channel username into its handle.
type Resolver interface {
	GetChannel(ctx context.Context, username string) (telegram.Channel, error)
}

// Poller fetches the recent item window for a channel.
type Poller interface {
	Poll(ctx context.Context, channelID int64, cutoff time.Time) ([]feed.Item, error)
}

// Validator accepts or rejects candidates.
type Validator interface {
	Accept(ctx context.Context, c *feed.PostCandidate, cutoff time.Time, watermark int64) bool
}

// Enricher builds the final post for an accepted candidate.
type Enricher interface {
	Enrich(ctx context.Context, channel config.Channel, channelID int64, c *feed.PostCandidate) feed.Post
}

// Publisher upserts a post downstream.
type Publisher interface {
	Publish(ctx context.Context, post feed.Post) error
}

// Cursor persists per-channel watermarks and published posts.
type Cursor interface {
	Watermark(ctx context.Context, channelID string) (int64, error)
	Advance(ctx context.Context, channelID string, itemID int64, itemTime time.Time) error
	RecordPost(ctx context.Context, channelID string, post feed.Post, lastItemID int64) error
}

// Snapshots stores the per-cycle batch artifact.
type Snapshots interface {
	Write(cycleTime time.Time, posts []feed.Post) (string, error)
}

// PipelineDeps lists the pipeline's collaborators. Publisher may be nil
// (dry run); Cursor and Snapshots may be nil in tests.
type PipelineDeps struct {
	Channels  []config.Channel
	Resolver  Resolver
	Poller    Poller
	Validator Validator
	Enricher  Enricher
	Publisher Publisher
	Cursor    Cursor
	Snapshots Snapshots
	Clock     Clock
	Config    config.Pipeline
}

// Pipeline runs one full Poll→Group→Validate→Enrich→Publish pass per channel.
type Pipeline struct {
	channels  []config.Channel
	resolver  Resolver
	poller    Poller
	validator Validator
	enricher  Enricher
	publisher Publisher
	cursor    Cursor
	snapshots Snapshots
	clock     Clock
	cfg       config.Pipeline
}

// NewPipeline builds a pipeline from its dependencies.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		channels:  deps.Channels,
		resolver:  deps.Resolver,
		poller:    deps.Poller,
		validator: deps.Validator,
		enricher:  deps.Enricher,
		publisher: deps.Publisher,
		cursor:    deps.Cursor,
		snapshots: deps.Snapshots,
		clock:     clock,
		cfg:       deps.Config,
	}
}

func (p *Pipeline) validateDeps() error {
	if p.resolver == nil || p.poller == nil || p.validator == nil || p.enricher == nil {
		return ErrNotConfigured
	}
	return nil
}

// RunCycle processes every configured channel once. A channel's failure is
// logged and never reaches its siblings. The cycle ends with a batch
// snapshot when any posts were produced.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	if err := p.validateDeps(); err != nil {
		return err
	}

	cycleStart := p.clock()
	cutoff := cycleStart.Add(-p.cfg.Lookback())

	var batch []feed.Post
	for _, ch := range p.channels {
		posts := p.runChannel(ctx, ch, cutoff)
		batch = append(batch, posts...)
	}

	if len(batch) > 0 && p.snapshots != nil {
		path, err := p.snapshots.Write(cycleStart, batch)
		if err != nil {
			logrus.WithError(err).Error("failed to write batch snapshot")
		} else {
			logrus.WithFields(logrus.Fields{"path": path, "posts": len(batch)}).Info("batch snapshot saved")
		}
	}
	return nil
}

// runChannel contains every failure to this channel: transient source errors
// mean "no items this cycle", and even a panic in a collaborator is caught so
// the remaining channels still run.
func (p *Pipeline) runChannel(ctx context.Context, ch config.Channel, cutoff time.Time) (posts []feed.Post) {
	log := logrus.WithField("channel", ch.ID)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("channel processing panicked: %v", r)
			posts = nil
		}
	}()

	handle, err := p.resolver.GetChannel(ctx, ch.Username)
	if err != nil {
		log.WithError(err).Warn("channel unreachable, skipping cycle")
		return nil
	}

	items, err := p.poller.Poll(ctx, handle.ID, cutoff)
	if err != nil {
		log.WithError(err).Warn("poll failed, skipping cycle")
		return nil
	}
	if len(items) == 0 {
		log.Debug("no new messages in the lookback window")
		return nil
	}

	var watermark int64
	if p.cursor != nil {
		watermark, err = p.cursor.Watermark(ctx, ch.ID)
		if err != nil {
			log.WithError(err).Warn("watermark lookup failed, relying on time cutoff only")
			watermark = 0
		}
	}

	candidates := grouper.Group(items, p.cfg.MaxTimeDiff())
	log.WithFields(logrus.Fields{"items": len(items), "candidates": len(candidates)}).Info("grouped message window")

	for _, c := range candidates {
		if !p.validator.Accept(ctx, c, cutoff, watermark) {
			continue
		}

		post := p.enricher.Enrich(ctx, ch, handle.ID, c)
		posts = append(posts, post)
		log.WithFields(logrus.Fields{
			"post_id": post.ID,
			"members": c.MemberIDs,
			"gallery": len(post.GalleryImages),
		}).Info("candidate enriched")

		if p.publisher == nil {
			continue
		}
		if err := p.publisher.Publish(ctx, post); err != nil {
			log.WithError(err).WithField("post_id", post.ID).Error("publish failed")
			continue
		}
		log.WithField("post_id", post.ID).Info("post published")

		if p.cursor != nil {
			if err := p.cursor.RecordPost(ctx, ch.ID, post, c.LastMemberID()); err != nil {
				log.WithError(err).Warn("failed to record published post")
			}
			if err := p.cursor.Advance(ctx, ch.ID, c.LastMemberID(), c.End); err != nil {
				log.WithError(err).Warn("failed to advance watermark")
			}
		}
	}

	return posts
}

// String identifies the pipeline in logs.
func (p *Pipeline) String() string {
	return fmt.Sprintf("pipeline(%d channels)", len(p.channels))
}
