package task

import (
	"context"
)

type State string

const (
	StatePending  State = "pending"
	StateComplete State = "complete"
	StateError    State = "error"
)

// Snapshot is one status response of a running task.
type Snapshot struct {
	State    State
	Progress int

	Result string
	Error  string
}

type StatusEndpoint interface {
	Status(ctx context.Context, id string) (*Snapshot, error)
}

type StatusFunc func(ctx context.Context, id string) (*Snapshot, error)

func (f StatusFunc) Status(ctx context.Context, id string) (*Snapshot, error) {
	return f(ctx, id)
}
