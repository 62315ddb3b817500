// Package resolver schedules the proposal resolution sweep.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pezkuwi/internal/governance/models"
	"pezkuwi/pkg/requestcontext"
)

const defaultRunTimeout = 30 * time.Second

// Resolver closes expired proposals.
type Resolver interface {
	ResolveExpired(ctx context.Context, now time.Time) ([]models.Proposal, error)
}

// Scheduler runs the sweep on a cron schedule. Overlapping runs are
// skipped rather than queued.
type Scheduler struct {
	resolver Resolver
	cron     *cron.Cron
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// New validates schedule (standard cron syntax or descriptors such as
// "@every 1m") and registers the sweep.
func New(resolver Resolver, schedule string, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		resolver: resolver,
		logger:   logger,
		timeout:  defaultRunTimeout,
		now:      func() time.Time { return time.Now().UTC() },
	}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid governance resolve schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single sweep and returns how many proposals closed.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now()
	ctx = requestcontext.WithTime(ctx, now)
	resolved, err := s.resolver.ResolveExpired(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "proposal resolution failed", "error", err)
		return 0
	}
	if len(resolved) > 0 {
		s.logger.InfoContext(ctx, "proposal resolution sweep finished", "resolved", len(resolved))
	}
	return len(resolved)
}

// Run starts the schedule and blocks until ctx is done, then waits for an
// in-flight sweep to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
