package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler runs the pipeline forever with a fixed inter-cycle delay. The
// first cycle starts immediately.
type Scheduler struct {
	pipeline *Pipeline
	interval time.Duration
}

// NewScheduler builds a scheduler around the pipeline.
func NewScheduler(pipeline *Pipeline, interval time.Duration) *Scheduler {
	return &Scheduler{pipeline: pipeline, interval: interval}
}

// Run cycles until ctx is cancelled. Cycle errors are logged and the loop
// keeps going; only cancellation stops it.
func (s *Scheduler) Run(ctx context.Context) error {
	logrus.WithField("interval", s.interval).Info("scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		start := time.Now()
		if err := s.pipeline.RunCycle(ctx); err != nil {
			logrus.WithError(err).Error("cycle failed")
		} else {
			logrus.WithField("took", time.Since(start).Round(time.Millisecond)).Info("cycle complete")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
