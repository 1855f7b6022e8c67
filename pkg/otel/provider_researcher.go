package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/researcher"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Researcher interface {
	Observable
	researcher.Provider
}

type observableResearcher struct {
	provider string

	researcher researcher.Provider

	durationMetric metric.Float64Histogram
}

func NewResearcher(provider string, p researcher.Provider) Researcher {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("research.duration",
		metric.WithDescription("Duration of research tasks from submission to outcome."),
		metric.WithUnit("s"),
	)

	return &observableResearcher{
		researcher: p,

		provider: provider,

		durationMetric: durationMetric,
	}
}

func (p *observableResearcher) otelSetup() {
}

func (p *observableResearcher) Research(ctx context.Context, instructions string, options *researcher.ResearchOptions) (*researcher.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "research "+p.provider)
	defer span.End()

	start := time.Now()

	result, err := p.researcher.Research(ctx, instructions, options)

	outcome := "success"

	if err != nil {
		outcome = "failure"

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if result != nil && result.Report != nil {
		span.SetAttributes(
			Int("research.paragraphs", len(result.Report.Summary)),
			Int("research.sources", len(result.Report.Sources)),
		)
	}

	p.durationMetric.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		String("research.provider", p.provider),
		String("research.outcome", outcome),
	))

	return result, err
}
