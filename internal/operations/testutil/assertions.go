package testutil

import (
	"testing"

	"openrange/internal/operations"
)

// AssertStepStatus verifies a step has the expected status
func AssertStepStatus(t *testing.T, resp *operations.OperationResponse, stepID string, expected operations.StepStatus) {
	t.Helper()
	if resp == nil {
		t.Fatal("operation response is nil")
	}
	step, ok := resp.Steps[stepID]
	if !ok || step == nil {
		t.Fatalf("step %s not found", stepID)
	}
	if got := step.GetStatus(); got != expected {
		t.Errorf("step %s status = %v, want %v", stepID, got, expected)
	}
}

// AssertOperationStatus verifies a run ended with the expected status
func AssertOperationStatus(t *testing.T, resp *operations.OperationResponse, expected operations.OperationStatusValue) {
	t.Helper()
	if resp == nil {
		t.Fatal("operation response is nil")
	}
	if resp.Status != expected {
		t.Errorf("operation status = %v, want %v (error: %s)", resp.Status, expected, resp.Error)
	}
}

// AssertStepsCompleted verifies every listed step completed
func AssertStepsCompleted(t *testing.T, resp *operations.OperationResponse, stepIDs ...string) {
	t.Helper()
	for _, id := range stepIDs {
		AssertStepStatus(t, resp, id, operations.StepStatusCompleted)
	}
}

// AssertStepFailed verifies a step failed and recorded its error
func AssertStepFailed(t *testing.T, resp *operations.OperationResponse, stepID string) {
	t.Helper()
	AssertStepStatus(t, resp, stepID, operations.StepStatusFailed)
	if step := resp.Steps[stepID]; step != nil && step.Error == nil {
		t.Errorf("step %s has no error", stepID)
	}
}

// AssertStepsSkipped verifies every listed step was skipped
func AssertStepsSkipped(t *testing.T, resp *operations.OperationResponse, stepIDs ...string) {
	t.Helper()
	for _, id := range stepIDs {
		AssertStepStatus(t, resp, id, operations.StepStatusSkipped)
	}
}
