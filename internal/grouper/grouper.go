// Package grouper clusters an ordered message stream into post candidates.
package grouper

import (
	"time"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

// Group partitions items (oldest to newest) into candidates. An item joins
// the open candidate when it shares the candidate's group key, or when its
// gap from the candidate's *current* end is within maxGap. Group-key identity
// overrides the time window: a native multi-attachment album stays together
// no matter how late its parts arrive. Successive in-window gaps chain, so a
// candidate may span far more than maxGap in total.
func Group(items []feed.Item, maxGap time.Duration) []*feed.PostCandidate {
	var (
		closed  []*feed.PostCandidate
		current *feed.PostCandidate
	)

	for _, it := range items {
		if !it.Eligible() {
			continue
		}

		if current == nil {
			current = feed.NewCandidate(it)
			continue
		}

		if joins(current, it, maxGap) {
			current.Absorb(it)
		} else {
			closed = append(closed, current)
			current = feed.NewCandidate(it)
		}
	}

	if current != nil {
		closed = append(closed, current)
	}
	return closed
}

func joins(c *feed.PostCandidate, it feed.Item, maxGap time.Duration) bool {
	if it.GroupKey != nil && c.GroupKey != nil && *it.GroupKey == *c.GroupKey {
		return true
	}
	diff := it.Time.Sub(c.End)
	return diff >= 0 && diff <= maxGap
}
