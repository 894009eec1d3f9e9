// Package telemetry is optional, ambient instrumentation around the three
// public entry points: a Prometheus histogram of call duration and an
// OpenTelemetry span carrying per-call attributes (compute options, Monte
// Carlo run count and seed, scenario name and intervention count). The core never
// starts an HTTP exporter or otherwise performs I/O here — a caller wires
// its own Prometheus registry and otel exporter and this package only
// records against the global providers it's handed.
package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/re-cinq/ghgcore")

// durationSeconds is the call-duration histogram, labeled by entry point.
// It is registered against the default Prometheus registerer in init, when
// the package is imported; the registration error (for example, a
// collector of the same name already registered) is discarded rather than
// causing a panic.
var durationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ghgcore_entrypoint_duration_seconds",
	Help:    "Duration of ghgcore public entry point calls.",
	Buckets: prometheus.DefBuckets,
}, []string{"entrypoint"})

func init() {
	_ = prometheus.Register(durationSeconds)
}

// Span wraps fn in an otel span named entrypoint with the given attributes,
// and records its wall-clock duration in the Prometheus histogram. Errors
// returned by fn are recorded on the span but otherwise passed through
// unchanged.
func Span(ctx context.Context, entrypoint string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, entrypoint, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	durationSeconds.WithLabelValues(entrypoint).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
	}
	return err
}
