package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/pkg/contracts"
)

const (
	ServiceName         = "copa-analysis"
	InstrumentationName = "github.com/cherdeman/COPA-Project"
)

// Telemetry holds the OpenTelemetry providers for one run
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Tracer         trace.Tracer
	Metrics        *AnalysisMetrics

	textfile  string
	traceSink io.Closer
	logger    *slog.Logger
}

// InitializeTelemetry sets up tracing (when enabled) and the metrics
// pipeline. Metrics always flow into a private Prometheus registry; they are
// only persisted when cfg.MetricsTextfile is set.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	t := &Telemetry{
		textfile: cfg.MetricsTextfile,
		logger:   logger,
		Tracer:   tracenoop.NewTracerProvider().Tracer(InstrumentationName),
	}

	if cfg.TracingEnabled && cfg.TraceExporter == "stdout" {
		if err := t.initializeTracing(cfg, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.TracerProvider != nil),
		slog.String("metrics_textfile", cfg.MetricsTextfile))

	return t, nil
}

// initializeTracing sets up OpenTelemetry tracing with the stdout exporter
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource) error {
	var w io.Writer = os.Stderr
	if cfg.TraceFile != "" {
		f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		t.traceSink = f
		w = f
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	t.TracerProvider = tp
	t.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(contracts.Version))
	otel.SetTracerProvider(tp)
	return nil
}

// initializeMetrics wires an OTel meter provider to a Prometheus registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(registry),
		prometheus.WithoutScopeInfo(),
		prometheus.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	metrics, err := NewAnalysisMetrics(mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(contracts.Version)))
	if err != nil {
		return err
	}

	t.Registry = registry
	t.MeterProvider = mp
	t.Metrics = metrics
	return nil
}

// Shutdown writes the metrics textfile (if configured) and flushes providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if t.textfile != "" && t.Registry != nil {
		if err := promclient.WriteToTextfile(t.textfile, t.Registry); err != nil {
			keep(fmt.Errorf("write metrics textfile: %w", err))
		} else {
			t.logger.Debug("Metrics written", slog.String("path", t.textfile))
		}
	}

	if t.TracerProvider != nil {
		keep(t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		keep(t.MeterProvider.Shutdown(ctx))
	}
	if t.traceSink != nil {
		keep(t.traceSink.Close())
	}

	return firstErr
}

// StartSpan starts a span on the run tracer; a nil Telemetry yields a no-op span
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := trace.Tracer(tracenoop.NewTracerProvider().Tracer(InstrumentationName))
	if t != nil && t.Tracer != nil {
		tracer = t.Tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Instruments returns the run metrics; nil when telemetry is not set up
func (t *Telemetry) Instruments() *AnalysisMetrics {
	if t == nil {
		return nil
	}
	return t.Metrics
}

// EndSpan records err on span (if any) and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// AnalysisMetrics holds the batch-job instruments
type AnalysisMetrics struct {
	rowsLoaded         metric.Int64Counter
	rowsKept           metric.Int64Counter
	tokensUnrecognized metric.Int64Counter
	queries            metric.Int64Counter
	queryDuration      metric.Float64Histogram
}

// NewAnalysisMetrics creates the analysis instruments on meter
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"copa_rows_loaded",
		metric.WithDescription("Complaint rows read from the source file"),
	)
	if err != nil {
		return nil, err
	}

	rowsKept, err := meter.Int64Counter(
		"copa_rows_kept",
		metric.WithDescription("Complaint rows kept after the jurisdiction filter"),
	)
	if err != nil {
		return nil, err
	}

	tokensUnrecognized, err := meter.Int64Counter(
		"copa_tokens_unrecognized",
		metric.WithDescription("Multi-value tokens that matched no category"),
	)
	if err != nil {
		return nil, err
	}

	queries, err := meter.Int64Counter(
		"copa_queries",
		metric.WithDescription("Aggregation queries executed"),
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := meter.Float64Histogram(
		"copa_query_duration_seconds",
		metric.WithDescription("Aggregation query duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	return &AnalysisMetrics{
		rowsLoaded:         rowsLoaded,
		rowsKept:           rowsKept,
		tokensUnrecognized: tokensUnrecognized,
		queries:            queries,
		queryDuration:      queryDuration,
	}, nil
}

// RecordLoad records how many rows were read
func (m *AnalysisMetrics) RecordLoad(ctx context.Context, loaded int) {
	if m == nil {
		return
	}
	m.rowsLoaded.Add(ctx, int64(loaded))
}

// RecordReduce records how many rows survived the jurisdiction filter
func (m *AnalysisMetrics) RecordReduce(ctx context.Context, kept int) {
	if m == nil {
		return
	}
	m.rowsKept.Add(ctx, int64(kept))
}

// RecordUnrecognized records dropped tokens for one entity characteristic
func (m *AnalysisMetrics) RecordUnrecognized(ctx context.Context, entity, characteristic string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.tokensUnrecognized.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("characteristic", characteristic),
	))
}

// RecordQuery records one query execution
func (m *AnalysisMetrics) RecordQuery(ctx context.Context, query string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("query", query),
		attribute.String("outcome", outcome),
	)
	m.queries.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, duration.Seconds(), attrs)
}
