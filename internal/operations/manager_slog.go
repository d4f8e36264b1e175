package operations

import (
	"context"
	"log/slog"
	"time"
)

// logOperationStart logs the start of a run
func (m *Manager) logOperationStart(ctx context.Context, req OperationRequest, steps int) {
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("operation_id", req.ID),
		slog.String("input", req.InputPath),
		slog.Int("inline_rows", len(req.Rows)),
		slog.Int("step_count", steps))
}

// logOperationComplete logs the end of a run
func (m *Manager) logOperationComplete(ctx context.Context, state *OperationState) {
	level := slog.LevelInfo
	if state.Error != nil {
		level = slog.LevelError
	}
	m.logger.Log(ctx, level, "operation_complete",
		slog.String("operation_id", state.ID),
		slog.String("status", string(state.Status)),
		slog.Duration("duration", state.Duration()),
		slog.Int("daily_rows", len(state.Batch.DailyRows)),
		slog.Int("dropped_days", state.Batch.DroppedDays))
}

// logOperationError logs a run-level error
func (m *Manager) logOperationError(ctx context.Context, operationID string, err error) {
	m.logger.ErrorContext(ctx, "operation_error",
		slog.String("operation_id", operationID),
		slog.String("error", err.Error()))
}

// logStepComplete logs the completion of a step
func (m *Manager) logStepComplete(ctx context.Context, operationID, stepID string, duration time.Duration) {
	m.logger.InfoContext(ctx, "step_complete",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.Duration("duration", duration))
}

// logStepError logs a step error
func (m *Manager) logStepError(ctx context.Context, operationID, stepID string, err error) {
	m.logger.ErrorContext(ctx, "step_error",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.String("error", err.Error()))
}
