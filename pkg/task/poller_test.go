package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/task"

	"github.com/stretchr/testify/require"
)

type scriptedEndpoint struct {
	snapshots []*task.Snapshot
	errs      []error

	calls int
	ids   []string
}

func (e *scriptedEndpoint) Status(ctx context.Context, id string) (*task.Snapshot, error) {
	i := e.calls
	e.calls++
	e.ids = append(e.ids, id)

	if i < len(e.errs) && e.errs[i] != nil {
		return nil, e.errs[i]
	}

	if i < len(e.snapshots) {
		return e.snapshots[i], nil
	}

	return &task.Snapshot{State: task.StatePending}, nil
}

func pending(progress int) *task.Snapshot {
	return &task.Snapshot{State: task.StatePending, Progress: progress}
}

func newPoller(attempts int) (*task.Poller, *[]int) {
	var progress []int

	p := &task.Poller{
		MaxAttempts: attempts,
		Interval:    time.Millisecond,

		Progress: func(value int) {
			progress = append(progress, value)
		},
	}

	return p, &progress
}

func TestPollerSuccess(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			pending(10),
			pending(55),
			{State: task.StateComplete, Result: "## Summary\n\nText.\n### Sources:\n* https://x"},
		},
	}

	p, progress := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	success, ok := outcome.(task.Success)
	require.True(t, ok, "unexpected outcome %#v", outcome)

	require.Equal(t, []string{"Text."}, success.Report.Summary)
	require.Len(t, success.Report.Sources, 1)
	require.Equal(t, "https://x", success.Report.Sources[0].URL)

	require.Equal(t, []int{10, 55}, *progress)
	require.Equal(t, 3, endpoint.calls)
	require.Equal(t, []string{"abc", "abc", "abc"}, endpoint.ids)

	require.NoError(t, task.Err(outcome))
}

func TestPollerCompleteOnFirstSnapshot(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			{State: task.StateComplete, Progress: 3, Result: "done"},
		},
	}

	p, progress := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	require.IsType(t, task.Success{}, outcome)
	require.Equal(t, 1, endpoint.calls)
	require.Empty(t, *progress)
}

func TestPollerJobError(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			pending(20),
			{State: task.StateError, Error: "search backend unavailable"},
		},
	}

	p, _ := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	failure, ok := outcome.(task.Failure)
	require.True(t, ok)

	require.Equal(t, task.FailureJob, failure.Kind)
	require.Equal(t, "search backend unavailable", failure.Reason)
	require.Equal(t, 2, endpoint.calls)

	require.ErrorIs(t, task.Err(outcome), task.ErrJob)
}

func TestPollerJobErrorDefaultReason(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			{State: task.StateError},
		},
	}

	p, _ := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	require.Equal(t, task.Failure{Kind: task.FailureJob, Reason: task.DefaultJobError}, outcome)
}

func TestPollerTransportError(t *testing.T) {
	errBroken := errors.New("connection reset")

	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{pending(5)},
		errs:      []error{nil, errBroken},
	}

	p, _ := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	failure, ok := outcome.(task.Failure)
	require.True(t, ok)

	require.Equal(t, task.FailureTransport, failure.Kind)
	require.Equal(t, "connection reset", failure.Reason)
	require.Equal(t, 2, endpoint.calls)

	err := task.Err(outcome)

	require.ErrorIs(t, err, task.ErrTransport)
	require.ErrorIs(t, err, errBroken)
}

func TestPollerNilSnapshot(t *testing.T) {
	endpoint := task.StatusFunc(func(ctx context.Context, id string) (*task.Snapshot, error) {
		return nil, nil
	})

	p, _ := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	failure, ok := outcome.(task.Failure)
	require.True(t, ok)
	require.Equal(t, task.FailureTransport, failure.Kind)
}

func TestPollerExhausted(t *testing.T) {
	for _, attempts := range []int{1, 5, task.DefaultMaxAttempts} {
		endpoint := &scriptedEndpoint{}

		p, progress := newPoller(attempts)

		outcome := p.Run(context.Background(), endpoint, "abc")

		require.Equal(t, task.TimedOut{Attempts: attempts}, outcome)
		require.Equal(t, attempts, endpoint.calls)
		require.Len(t, *progress, attempts)

		require.ErrorIs(t, task.Err(outcome), task.ErrTimeout)
	}
}

func TestPollerCompleteOnLastAttempt(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			pending(10),
			pending(20),
			{State: task.StateComplete, Result: "done"},
		},
	}

	p, _ := newPoller(3)

	outcome := p.Run(context.Background(), endpoint, "abc")

	require.IsType(t, task.Success{}, outcome)
}

func TestPollerProgressClamping(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			pending(-5),
			pending(150),
			{State: task.StatePending},
			{State: "running", Progress: 42},
			{State: "Complete", Progress: 99},
			{State: task.StateComplete, Result: "done"},
		},
	}

	p, progress := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	require.IsType(t, task.Success{}, outcome)
	require.Equal(t, []int{0, 100, 0, 42, 99}, *progress)
}

func TestPollerDefaults(t *testing.T) {
	endpoint := &scriptedEndpoint{
		snapshots: []*task.Snapshot{
			{State: task.StateComplete, Result: "done"},
		},
	}

	p := &task.Poller{}

	outcome := p.Run(context.Background(), endpoint, "abc")

	require.IsType(t, task.Success{}, outcome)
}

func TestPollerCancelledBeforeStart(t *testing.T) {
	endpoint := &scriptedEndpoint{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, _ := newPoller(60)

	outcome := p.Run(ctx, endpoint, "abc")

	cancelled, ok := outcome.(task.Cancelled)
	require.True(t, ok)

	require.ErrorIs(t, cancelled.Err, context.Canceled)
	require.Equal(t, 0, endpoint.calls)

	require.ErrorIs(t, task.Err(outcome), task.ErrCancelled)
}

func TestPollerCancelledDuringWait(t *testing.T) {
	endpoint := &scriptedEndpoint{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &task.Poller{
		MaxAttempts: 60,
		Interval:    time.Hour,

		Progress: func(int) {
			cancel()
		},
	}

	done := make(chan task.Outcome, 1)

	go func() {
		done <- p.Run(ctx, endpoint, "abc")
	}()

	select {
	case outcome := <-done:
		require.IsType(t, task.Cancelled{}, outcome)
		require.Equal(t, 1, endpoint.calls)

	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestPollerCancelledDuringRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	endpoint := task.StatusFunc(func(ctx context.Context, id string) (*task.Snapshot, error) {
		cancel()
		return nil, ctx.Err()
	})

	p, _ := newPoller(60)

	outcome := p.Run(ctx, endpoint, "abc")

	require.IsType(t, task.Cancelled{}, outcome)
}

func TestPollerDeadlineBeforeRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	endpoint := task.StatusFunc(func(ctx context.Context, id string) (*task.Snapshot, error) {
		return nil, context.DeadlineExceeded
	})

	p, _ := newPoller(60)

	outcome := p.Run(ctx, endpoint, "abc")

	cancelled, ok := outcome.(task.Cancelled)
	require.True(t, ok, "unexpected outcome %#v", outcome)

	require.ErrorIs(t, cancelled.Err, context.DeadlineExceeded)
}

func TestPollerDeadlineErrorWithoutDeadline(t *testing.T) {
	endpoint := task.StatusFunc(func(ctx context.Context, id string) (*task.Snapshot, error) {
		return nil, context.DeadlineExceeded
	})

	p, _ := newPoller(60)

	outcome := p.Run(context.Background(), endpoint, "abc")

	failure, ok := outcome.(task.Failure)
	require.True(t, ok, "unexpected outcome %#v", outcome)

	require.Equal(t, task.FailureTransport, failure.Kind)
}
