// Package observability bundles the logger, tracer, and metrics registry every
// module receives at construction time.
package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// NoOpLogger discards everything. Used by tests and as a fallback when a
// component is constructed without observability.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Config controls how the observability bundle is built.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	// LogJSON switches the slog handler to JSON output (the default in
	// deployed environments; text locally).
	LogJSON bool
}

// Observability carries the per-process logger, tracer, and Prometheus
// registry. Modules extract the pieces they need at construction.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds the observability bundle. The tracer comes from the global otel
// provider, so deployments that never install an SDK get no-op spans for free.
func New(cfg Config) *Observability {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: registry,
	}
}
