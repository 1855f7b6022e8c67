package researcher

import (
	"context"

	"github.com/adrianliechti/wingman-research/pkg/report"
)

type Provider interface {
	Research(ctx context.Context, instructions string, options *ResearchOptions) (*Result, error)
}

type ResearchOptions struct {
	// Progress receives the completion percentage while the research runs.
	Progress func(progress int)
}

type Result struct {
	Content string

	Report *report.Report
}
