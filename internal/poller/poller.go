// Package poller implements a fixed-delay task loop. The original
// display ran free-floating interval timers; here the schedule is an
// explicit loop owned by its caller and cancelled through the context.
package poller

import (
	"context"
	"log/slog"
	"time"
)

// Task is one unit of scheduled work. A non-nil error switches the
// loop to the retry backoff for the next run.
type Task func(ctx context.Context) error

// Loop runs a task on a fixed delay: the next run is scheduled only
// after the previous one finishes, so slow tasks never overlap.
type Loop struct {
	task     Task
	interval time.Duration
	backoff  time.Duration
	logger   *slog.Logger
}

// New creates a loop. backoff is the delay used after a failed run;
// zero means the regular interval is kept.
func New(task Task, interval, backoff time.Duration, logger *slog.Logger) *Loop {
	if backoff <= 0 {
		backoff = interval
	}
	return &Loop{
		task:     task,
		interval: interval,
		backoff:  backoff,
		logger:   logger,
	}
}

// Run executes the task immediately and then on the fixed delay until
// the context is cancelled. It always returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		// The select picks at random when both channels are ready.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := l.interval
		if err := l.task(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warn("scheduled task failed", "error", err, "retry_in", l.backoff.String())
			delay = l.backoff
		}

		timer.Reset(delay)
	}
}
