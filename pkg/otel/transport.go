package otel

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Transport instruments outgoing requests when telemetry is enabled.
func Transport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}

	if !EnableTelemetry {
		return rt
	}

	return otelhttp.NewTransport(rt)
}
