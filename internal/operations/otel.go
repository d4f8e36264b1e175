package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"openrange/internal/infrastructure"
)

const (
	TracerName = "openrange.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer backed by providers. A nil providers
// yields a no-op tracer without metrics.
func NewOperationTracer(providers *infrastructure.OTelProviders) *OperationTracer {
	if providers == nil || providers.Tracer == nil {
		return &OperationTracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}
	}
	return &OperationTracer{
		tracer:  providers.Tracer,
		metrics: providers.Metrics,
	}
}

// Metrics returns the pipeline counters, which may be nil
func (pt *OperationTracer) Metrics() *infrastructure.PipelineMetrics {
	return pt.metrics
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, req OperationRequest) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.input", req.InputPath),
			attribute.Int("operation.inline_rows", len(req.Rows)),
		),
	)
}

// TraceStepExecution creates a span for one step
func (pt *OperationTracer) TraceStepExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("operation.step.%s", stepID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStepCompletion closes out a step span and records its duration
func (pt *OperationTracer) RecordStepCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)
	pt.metrics.RecordStep(ctx, stepID, duration, err == nil)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// RecordOperationCompletion closes out the run span
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, state *OperationState) {
	span.SetAttributes(
		attribute.String("operation.status", string(state.Status)),
		attribute.Float64("operation.duration_seconds", state.Duration().Seconds()),
		attribute.Int("operation.daily_rows", len(state.Batch.DailyRows)),
		attribute.Int("operation.dropped_days", state.Batch.DroppedDays),
	)
	if state.Error != nil {
		infrastructure.RecordError(ctx, state.Error)
		return
	}
	span.SetStatus(codes.Ok, "operation completed")
}
