package otel

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

// Setup configures the default slog logger and, when TELEMETRY is set, the
// OTLP trace, metric and log pipelines. The returned function flushes them.
func Setup(ctx context.Context, service, version string) (func(context.Context) error, error) {
	if !EnableTelemetry {
		level := slog.LevelInfo

		if EnableDebug {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithAttributes(
			attribute.String("service.name", service),
			attribute.String("service.version", version),
		),
	)

	if err != nil {
		return nil, err
	}

	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}

		return errors.Join(errs...)
	}

	tracer, err := setupTracer(ctx, resource)

	if err != nil {
		return nil, err
	}

	shutdowns = append(shutdowns, tracer)

	meter, err := setupMeter(ctx, resource)

	if err != nil {
		shutdown(ctx)
		return nil, err
	}

	shutdowns = append(shutdowns, meter)

	logger, err := setupLogger(ctx, resource)

	if err != nil {
		shutdown(ctx)
		return nil, err
	}

	shutdowns = append(shutdowns, logger)

	return shutdown, nil
}
