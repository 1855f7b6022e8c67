package otel

import (
	"context"

	"github.com/adrianliechti/wingman-research/pkg/task"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type StatusEndpoint interface {
	Observable
	task.StatusEndpoint
}

type observableStatusEndpoint struct {
	name string

	endpoint task.StatusEndpoint

	pollMetric metric.Int64Counter
}

func NewStatusEndpoint(name string, p task.StatusEndpoint) StatusEndpoint {
	meter := otel.Meter(instrumentationName)

	pollMetric, _ := meter.Int64Counter("research.polls",
		metric.WithDescription("Number of research status requests."),
		metric.WithUnit("{request}"),
	)

	return &observableStatusEndpoint{
		name: name,

		endpoint: p,

		pollMetric: pollMetric,
	}
}

func (p *observableStatusEndpoint) otelSetup() {
}

func (p *observableStatusEndpoint) Status(ctx context.Context, id string) (*task.Snapshot, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "research status "+p.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(String("research.id", id)),
	)
	defer span.End()

	snapshot, err := p.endpoint.Status(ctx, id)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		p.pollMetric.Add(ctx, 1, metric.WithAttributes(String("research.state", "failed")))

		return nil, err
	}

	if snapshot != nil {
		span.SetAttributes(
			String("research.state", string(snapshot.State)),
			Int("research.progress", snapshot.Progress),
		)

		p.pollMetric.Add(ctx, 1, metric.WithAttributes(String("research.state", string(snapshot.State))))
	}

	return snapshot, nil
}
