package limiter

import (
	"context"

	"github.com/adrianliechti/wingman-research/pkg/task"

	"golang.org/x/time/rate"
)

type StatusEndpoint interface {
	Limiter
	task.StatusEndpoint
}

type limitedStatusEndpoint struct {
	limiter  *rate.Limiter
	endpoint task.StatusEndpoint
}

func NewStatusEndpoint(l *rate.Limiter, p task.StatusEndpoint) StatusEndpoint {
	return &limitedStatusEndpoint{
		limiter:  l,
		endpoint: p,
	}
}

func (p *limitedStatusEndpoint) limiterSetup() {
}

func (p *limitedStatusEndpoint) Status(ctx context.Context, id string) (*task.Snapshot, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			// Wait fails early when the next token is due after the deadline.
			if _, ok := ctx.Deadline(); ok {
				return nil, context.DeadlineExceeded
			}

			return nil, err
		}
	}

	return p.endpoint.Status(ctx, id)
}
