package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"openrange/internal/config"
	"openrange/pkg/contracts"
)

const (
	ServiceName = "openrange"
	MeterName   = "openrange"
)

// OTelProviders holds the OpenTelemetry providers for one process.
// Tracer and Meter are always usable; they are no-ops when the matching
// signal is disabled.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *PipelineMetrics
	Logger         *slog.Logger

	textfile string
}

// InitializeOTel sets up tracing and metrics from cfg. Spans go to
// traceOut when the stdout exporter is selected; metrics are collected into
// a private Prometheus registry.
func InitializeOTel(cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	if traceOut == nil {
		traceOut = os.Stderr
	}
	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Tracer:   tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:    metricnoop.NewMeterProvider().Meter(MeterName),
		Logger:   logger,
		textfile: cfg.MetricsTextfile,
	}

	if cfg.EnableTracing && cfg.TraceExporter == "stdout" {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(traceOut))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
	}

	if cfg.EnableMetrics {
		reg := prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.Registry = reg
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))
	}

	metrics, err := NewPipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	providers.Metrics = metrics

	logger.DebugContext(ctx, "telemetry initialized",
		slog.Bool("tracing_enabled", providers.TracerProvider != nil),
		slog.Bool("metrics_enabled", providers.MeterProvider != nil))

	return providers, nil
}

func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	env := cfg.Environment
	if env == "" {
		env = "development"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
		semconv.DeploymentEnvironmentName(env),
	), nil
}

// WriteMetricsTextfile dumps the registry in the node-exporter textfile
// format. It is a no-op when metrics are disabled or no path is configured.
func (p *OTelProviders) WriteMetricsTextfile() error {
	if p == nil || p.Registry == nil || p.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(p.textfile, p.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// PipelineMetrics holds the counters reported by a feature-building run.
// All methods are safe on a nil receiver.
type PipelineMetrics struct {
	RowsRead     metric.Int64Counter
	RowsDropped  metric.Int64Counter
	Bars         metric.Int64Counter
	Days         metric.Int64Counter
	DaysDropped  metric.Int64Counter
	DailyRows    metric.Int64Counter
	StepDuration metric.Float64Histogram
}

// NewPipelineMetrics registers the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	m := &PipelineMetrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.RowsRead, "openrange_rows_read", "Source rows read from input"},
		{&m.RowsDropped, "openrange_rows_dropped", "Source rows dropped during normalization"},
		{&m.Bars, "openrange_bars", "Distinct bars after de-duplication"},
		{&m.Days, "openrange_days", "Trading days grouped from bars"},
		{&m.DaysDropped, "openrange_days_dropped", "Trading days dropped for an incomplete opening range"},
		{&m.DailyRows, "openrange_daily_rows", "Daily feature rows produced"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	hist, err := meter.Float64Histogram(
		"openrange_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	m.StepDuration = hist

	return m, nil
}

func (m *PipelineMetrics) add(ctx context.Context, c metric.Int64Counter, n int) {
	if m == nil || c == nil || n == 0 {
		return
	}
	c.Add(ctx, int64(n))
}

// RecordRows records rows read and dropped by normalization
func (m *PipelineMetrics) RecordRows(ctx context.Context, read, dropped int) {
	if m == nil {
		return
	}
	m.add(ctx, m.RowsRead, read)
	m.add(ctx, m.RowsDropped, dropped)
}

// RecordSeries records distinct bars and grouped days
func (m *PipelineMetrics) RecordSeries(ctx context.Context, bars, days int) {
	if m == nil {
		return
	}
	m.add(ctx, m.Bars, bars)
	m.add(ctx, m.Days, days)
}

// RecordFeatures records produced and dropped days
func (m *PipelineMetrics) RecordFeatures(ctx context.Context, rows, dropped int) {
	if m == nil {
		return
	}
	m.add(ctx, m.DailyRows, rows)
	m.add(ctx, m.DaysDropped, dropped)
}

// RecordStep records one pipeline step's duration
func (m *PipelineMetrics) RecordStep(ctx context.Context, step string, d time.Duration, success bool) {
	if m == nil || m.StepDuration == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.StepDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
