package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/report"
)

const (
	DefaultMaxAttempts = 60
	DefaultInterval    = 2 * time.Second

	DefaultJobError = "Research task failed"
)

// Poller polls a task until it completes, fails or runs out of attempts.
// The bound is a number of status requests, not a deadline; request latency
// adds to the total wait.
type Poller struct {
	MaxAttempts int
	Interval    time.Duration

	// Progress receives the clamped progress of every pending snapshot.
	Progress func(progress int)
}

func (p *Poller) Run(ctx context.Context, endpoint StatusEndpoint, id string) Outcome {
	maxAttempts := p.MaxAttempts

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	interval := p.Interval

	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := slog.With("id", id)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Cancelled{Err: err}
		}

		snapshot, err := endpoint.Status(ctx, id)

		if err != nil {
			if cause := contextCause(ctx, err); cause != nil {
				return Cancelled{Err: cause}
			}

			logger.WarnContext(ctx, "research status request failed", "attempt", attempt, "error", err)

			return Failure{
				Kind:   FailureTransport,
				Reason: err.Error(),
				Err:    err,
			}
		}

		if snapshot == nil {
			err := errors.New("empty status response")

			return Failure{
				Kind:   FailureTransport,
				Reason: err.Error(),
				Err:    err,
			}
		}

		switch snapshot.State {
		case StateComplete:
			logger.DebugContext(ctx, "research task completed", "attempt", attempt)

			return Success{
				Report: report.Parse(snapshot.Result),
				Raw:    snapshot.Result,
			}

		case StateError:
			reason := snapshot.Error

			if reason == "" {
				reason = DefaultJobError
			}

			logger.DebugContext(ctx, "research task failed", "attempt", attempt, "reason", reason)

			return Failure{
				Kind:   FailureJob,
				Reason: reason,
			}

		case StatePending:

		default:
			logger.DebugContext(ctx, "unknown research task state", "state", snapshot.State)
		}

		progress := clampProgress(snapshot.Progress)

		if progress != snapshot.Progress {
			logger.DebugContext(ctx, "research progress out of range", "progress", snapshot.Progress)
		}

		if p.Progress != nil {
			p.Progress(progress)
		}

		if attempt >= maxAttempts {
			logger.InfoContext(ctx, "research task timed out", "attempts", attempt)
			return TimedOut{Attempts: attempt}
		}

		timer := time.NewTimer(interval)

		select {
		case <-ctx.Done():
			timer.Stop()
			return Cancelled{Err: ctx.Err()}

		case <-timer.C:
		}
	}
}

// contextCause reports whether a failed status request was stopped by the
// caller's context, including a deadline that would pass before the request.
func contextCause(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if _, ok := ctx.Deadline(); ok && errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}

	return nil
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}

	if progress > 100 {
		return 100
	}

	return progress
}
