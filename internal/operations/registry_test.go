package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/operations"
	optest "openrange/internal/operations/testutil"
)

func ids(steps []operations.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.ID()
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	r := operations.NewRegistry()

	require.NoError(t, r.Register(optest.NewMockStep("a")))
	assert.Error(t, r.Register(optest.NewMockStep("a")), "duplicate ID")
	assert.Error(t, r.Register(optest.NewMockStep("")), "empty ID")
	assert.Error(t, r.Register(nil))
	assert.Equal(t, 1, r.Count())

	step, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", step.ID())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistry_GetDependencyOrder(t *testing.T) {
	tests := []struct {
		name    string
		steps   []*optest.MockStep
		want    []string
		wantErr bool
	}{
		{
			name:  "registration order without dependencies",
			steps: []*optest.MockStep{optest.NewMockStep("b"), optest.NewMockStep("a")},
			want:  []string{"b", "a"},
		},
		{
			name: "chain registered backwards",
			steps: []*optest.MockStep{
				optest.NewMockStep("c", "b"),
				optest.NewMockStep("b", "a"),
				optest.NewMockStep("a"),
			},
			want: []string{"a", "b", "c"},
		},
		{
			name:    "unknown dependency",
			steps:   []*optest.MockStep{optest.NewMockStep("a", "ghost")},
			wantErr: true,
		},
		{
			name:    "cycle",
			steps:   []*optest.MockStep{optest.NewMockStep("a", "b"), optest.NewMockStep("b", "a")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := operations.NewRegistry()
			for _, s := range tt.steps {
				require.NoError(t, r.Register(s))
			}

			got, err := r.GetDependencyOrder()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRegisterDefaultSteps_Order(t *testing.T) {
	r := operations.NewRegistry()
	require.NoError(t, operations.RegisterDefaultSteps(r, operations.Dependencies{}))

	ordered, err := r.GetDependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{
		operations.StepIDLoad,
		operations.StepIDNormalize,
		operations.StepIDSeries,
		operations.StepIDFeatures,
		operations.StepIDSummary,
		operations.StepIDExport,
	}, ids(ordered))
}
