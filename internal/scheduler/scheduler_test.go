package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingRunner struct {
	runs atomic.Int32
	err  error
}

func (c *countingRunner) Run(ctx context.Context) error {
	c.runs.Add(1)
	return c.err
}

func TestStart_RunsImmediatelyThenOnTicks(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	if err := s.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Start returned %v, want deadline exceeded", err)
	}

	if got := runner.runs.Load(); got < 2 {
		t.Errorf("ran %d times, want the immediate pass plus at least one tick", got)
	}
}

func TestStart_KeepsGoingAfterFailure(t *testing.T) {
	runner := &countingRunner{err: errors.New("boom")}
	s := New(runner, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	if got := runner.runs.Load(); got < 2 {
		t.Errorf("ran %d times, want failures to not stop the schedule", got)
	}
}
