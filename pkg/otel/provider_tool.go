package otel

import (
	"context"

	"github.com/adrianliechti/wingman-research/pkg/tool"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Tool interface {
	Observable
	tool.Provider
}

type observableTool struct {
	provider string

	tool tool.Provider
}

func NewTool(provider string, p tool.Provider) Tool {
	return &observableTool{
		tool: p,

		provider: provider,
	}
}

func (p *observableTool) otelSetup() {
}

func (p *observableTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "tools "+p.provider)
	defer span.End()

	tools, err := p.tool.Tools(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return tools, err
}

func (p *observableTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "execute_tool "+name)
	defer span.End()

	span.SetAttributes(String("tool.provider", p.provider))

	result, err := p.tool.Execute(ctx, name, parameters)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}
