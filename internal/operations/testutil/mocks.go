package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"openrange/internal/operations"
)

// MockStep is a testify mock implementing operations.Step
type MockStep struct {
	mock.Mock
	IDValue           string
	NameValue         string
	DependenciesValue []string
}

// NewMockStep creates a mock step with the given dependencies
func NewMockStep(id string, deps ...string) *MockStep {
	return &MockStep{IDValue: id, NameValue: id, DependenciesValue: deps}
}

// ID returns the step ID
func (m *MockStep) ID() string {
	return m.IDValue
}

// Name returns the step name
func (m *MockStep) Name() string {
	return m.NameValue
}

// GetDependencies returns the step dependencies
func (m *MockStep) GetDependencies() []string {
	return m.DependenciesValue
}

// Execute records the call and returns the configured error
func (m *MockStep) Execute(ctx context.Context, state *operations.OperationState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// Validate records the call and returns the configured error
func (m *MockStep) Validate(state *operations.OperationState) error {
	args := m.Called(state)
	return args.Error(0)
}
