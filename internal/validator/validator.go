// Package validator decides which post candidates are newsworthy.
package validator

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/config"
	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// Classifier is the optional AI relevance gate. Any error from it admits the
// candidate: when the oracle is down we would rather publish borderline posts
// than silently drop all news.
type Classifier interface {
	IsNewsworthy(ctx context.Context, body string) (bool, error)
}

// Validator applies the rejection rules from the pipeline configuration.
type Validator struct {
	cfg        config.Pipeline
	classifier Classifier
}

// New builds a validator. classifier may be nil.
func New(cfg config.Pipeline, classifier Classifier) *Validator {
	return &Validator{cfg: cfg, classifier: classifier}
}

// Accept reports whether the candidate should be published. cutoff is the
// start of the current scan window; watermark is the newest item id already
// published for this channel (0 when unknown). Rejections are silent drops,
// logged at debug level only.
func (v *Validator) Accept(ctx context.Context, c *feed.PostCandidate, cutoff time.Time, watermark int64) bool {
	if reason := v.reject(c, cutoff, watermark); reason != "" {
		logrus.WithFields(logrus.Fields{
			"members": c.MemberIDs,
			"reason":  reason,
		}).Debug("candidate rejected")
		return false
	}

	if v.classifier != nil {
		ok, err := v.classifier.IsNewsworthy(ctx, c.Body)
		if err != nil {
			// Fail open: oracle trouble must never starve the feed.
			logrus.WithError(err).Warn("classifier unavailable, accepting candidate")
			return true
		}
		if !ok {
			logrus.WithField("members", c.MemberIDs).Info("candidate rejected by classifier")
			return false
		}
	}

	return true
}

// reject returns the first matching rejection reason, or "" to keep the
// candidate.
func (v *Validator) reject(c *feed.PostCandidate, cutoff time.Time, watermark int64) string {
	if c.HasVideo() {
		return "video media"
	}

	// A candidate that closed before the scan cutoff belongs to a previous
	// cycle's window and was handled then.
	if c.End.Before(cutoff) {
		return "stale (before cutoff)"
	}
	if watermark > 0 && c.LastMemberID() <= watermark {
		return "stale (behind watermark)"
	}

	text := strings.TrimSpace(c.Body)
	if text == "" && len(c.Media) == 0 {
		return "empty"
	}

	if text != "" {
		// Rune counts, not bytes: Ethiopic characters are multi-byte.
		if utf8.RuneCountInString(text) < v.cfg.MinBodyLength {
			return "body too short"
		}

		stripped := strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
		if stripped == "" {
			return "body is links only"
		}
		if utf8.RuneCountInString(stripped) < v.cfg.MinBodyLengthNoURLs {
			return "body too short without links"
		}
	}

	return ""
}
