package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"openrange/internal/infrastructure"
)

// Manager runs registered steps in dependency order
type Manager struct {
	registry *Registry
	config   *Config
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new run manager
func NewManager(registry *Registry, config *Config, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	if tracer == nil {
		tracer = NewOperationTracer(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		config:   config,
		tracer:   tracer,
		logger:   logger.With("component", "operations"),
	}
}

// RegisterStep registers a step with the manager
func (m *Manager) RegisterStep(step Step) error {
	return m.registry.Register(step)
}

// GetRegistry returns the step registry
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Execute runs every registered step once. The first failing step stops the
// run; the steps after it are marked skipped.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	if req.ID == "" {
		req.ID = infrastructure.GetRunID(ctx)
	}
	if req.ID == "" {
		req.ID = infrastructure.GenerateRunID()
	}
	ctx = infrastructure.WithRunID(ctx, req.ID)

	state := NewOperationState(req.ID)
	state.Batch.InputPath = req.InputPath
	state.Batch.Rows = req.Rows

	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, req)
	defer span.End()

	steps, err := m.registry.GetDependencyOrder()
	if err != nil {
		err = NewFatalError("failed to order steps", err)
		m.logOperationError(ctx, req.ID, err)
		state.Fail(err)
		m.tracer.RecordOperationCompletion(ctx, span, state)
		return m.createResponse(state), err
	}

	for _, step := range steps {
		state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	m.logOperationStart(ctx, req, len(steps))
	state.Start()

	err = m.executeSequential(ctx, state, steps)
	switch {
	case err == nil:
		state.Complete()
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	m.tracer.RecordOperationCompletion(ctx, span, state)
	m.logOperationComplete(ctx, state)
	return m.createResponse(state), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if ctx.Err() != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID())
		}

		m.logger.InfoContext(ctx, "executing_step",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		if err := m.executeStep(ctx, state, step); err != nil {
			m.logStepError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
	}

	m.logger.InfoContext(ctx, "all_steps_completed",
		slog.String("operation_id", state.ID))
	return nil
}

// executeStep runs a single step under its timeout and span
func (m *Manager) executeStep(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStep(step.ID())
	if stepState == nil {
		return NewFatalError("step state not found", nil)
	}

	if err := m.checkDependencies(state, step); err != nil {
		stepState.Skip(err.Error())
		return err
	}

	if err := step.Validate(state); err != nil {
		vErr := NewValidationError(step.ID(), err.Error())
		vErr.Cause = err
		stepState.Fail(vErr)
		return vErr
	}

	timeout := m.config.GetStepTimeout(step.ID())
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepCtx, span := m.tracer.TraceStepExecution(stepCtx, state.ID, step.ID())
	defer span.End()

	stepState.Start()
	start := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(start)

	if err == nil && stepCtx.Err() != nil && ctx.Err() == nil {
		err = stepCtx.Err()
	}
	if err != nil {
		switch {
		case ctx.Err() != nil:
			err = NewCancellationError(step.ID())
		case errors.Is(err, context.DeadlineExceeded):
			err = NewTimeoutError(step.ID(), timeout.String())
		default:
			err = WrapError(err, step.ID())
		}
		stepState.Fail(err)
		m.tracer.RecordStepCompletion(stepCtx, span, step.ID(), duration, err)
		return err
	}

	stepState.Complete()
	m.tracer.RecordStepCompletion(stepCtx, span, step.ID(), duration, nil)
	m.logStepComplete(ctx, state.ID, step.ID(), duration)
	return nil
}

// checkDependencies verifies that all dependencies completed
func (m *Manager) checkDependencies(state *OperationState, step Step) error {
	for _, dep := range step.GetDependencies() {
		depState := state.GetStep(dep)
		if depState == nil {
			return NewDependencyError(step.ID(), dep, fmt.Sprintf("dependency %s not found", dep))
		}
		if status := depState.GetStatus(); status != StepStatusCompleted {
			return NewDependencyError(step.ID(), dep, fmt.Sprintf("dependency %s not completed (status: %s)", dep, status))
		}
	}
	return nil
}

// skipRemaining marks every still-pending step as skipped
func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStep(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(reason)
		}
	}
}

// createResponse creates a response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.Status,
		Duration: state.Duration(),
		Steps:    state.Steps,
		Batch:    state.Batch,
	}
	if state.Error != nil {
		resp.Error = state.Error.Error()
	}
	return resp
}
