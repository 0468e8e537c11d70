package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Runner is one schedulable unit of work.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs a Runner on a fixed interval, starting with an immediate
// pass. A failed pass is logged and the schedule keeps going.
type Scheduler struct {
	runner   Runner
	interval time.Duration
}

// New creates a scheduler. A non-positive interval defaults to six hours.
func New(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start blocks until the context is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "scheduler started, checking every %s\n", s.interval)

	if err := s.runner.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "scheduler stopped\n")
			return ctx.Err()
		case <-ticker.C:
			if err := s.runner.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
			}
		}
	}
}
