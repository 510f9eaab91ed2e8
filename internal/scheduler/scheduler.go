// Package scheduler implements a tick-based periodic sampling loop.
// It samples at a configurable interval and hands every snapshot to a
// callback. The scheduler does NOT render or write anything itself.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/silent-IM/private-dots/internal/config"
	"github.com/silent-IM/private-dots/internal/models"
)

// Sampler produces one snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) models.Snapshot
}

// Scheduler manages periodic sampling. Samples run one at a time on the
// goroutine that called Start.
type Scheduler struct {
	sampler Sampler
	cfg     *config.Config
	logger  *zap.Logger

	onSnapshot func(models.Snapshot)
}

// New creates a new Scheduler with the given sampler, config, and logger.
func New(sampler Sampler, cfg *config.Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		sampler: sampler,
		cfg:     cfg,
		logger:  logger,
	}
}

// OnSnapshot sets the callback invoked with every snapshot.
func (s *Scheduler) OnSnapshot(fn func(models.Snapshot)) {
	s.onSnapshot = fn
}

// Start samples immediately and then on every interval tick. It blocks
// until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Collection.Interval.Duration)
	defer ticker.Stop()

	s.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

// collect runs one sampling pass with the configured timeout.
func (s *Scheduler) collect(ctx context.Context) {
	sampleCtx := ctx
	if timeout := s.cfg.Collection.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		sampleCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	snapshot := s.sampler.Sample(sampleCtx)
	s.logger.Debug("Sampled metrics",
		zap.Time("timestamp", snapshot.Timestamp),
		zap.Duration("took", time.Since(start)))

	if ctx.Err() != nil {
		return
	}
	if s.onSnapshot != nil {
		s.onSnapshot(snapshot)
	}
}
