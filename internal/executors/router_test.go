package executors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-preplan/pkg/models"
)

type namedExecutor struct {
	name string
}

func (e *namedExecutor) Name() string { return e.name }

func (e *namedExecutor) Execute(_ context.Context, _ *models.Plan, _ string, _ map[string]any) (*models.ExecutionResult, error) {
	return &models.ExecutionResult{}, nil
}

func newTestRouter() *Router {
	r := NewRouter()
	r.Register(&namedExecutor{name: StrategySequential})
	r.Register(&namedExecutor{name: StrategyDelegated})
	return r
}

func TestRouteByComplexity(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		level models.ComplexityLevel
		want  string
	}{
		{level: models.ComplexityLinear, want: StrategySequential},
		{level: models.ComplexityBranch, want: StrategySequential},
		{level: models.ComplexityMultiAgent, want: StrategyDelegated},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			ex, err := r.Route(tt.level, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ex.Name())
		})
	}
}

func TestRouteExplicitOverrideWins(t *testing.T) {
	r := newTestRouter()

	ex, err := r.Route(models.ComplexityLinear, StrategyDelegated)
	require.NoError(t, err)
	assert.Equal(t, StrategyDelegated, ex.Name())
}

func TestRouteUnknownExplicitNeverFallsBack(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route(models.ComplexityLinear, "langgraph")

	var unknown *UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "langgraph", unknown.Name)
}
