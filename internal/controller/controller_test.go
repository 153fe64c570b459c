package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-preplan/internal/executors"
	"go-preplan/internal/plans"
	"go-preplan/internal/retrieval"
	"go-preplan/internal/steps"
	"go-preplan/internal/tools"
	"go-preplan/pkg/models"
)

func limitPlan() *models.Plan {
	return &models.Plan{
		PlanID:      "dc_transfer_limit",
		Title:       "DC transfer limit",
		Description: "compute the net transfer limit of a DC line",
		Steps: []models.Step{
			{
				ID:          "step1",
				Kind:        models.StepToolCall,
				Description: "query the sending-end limit",
				ToolName:    "query_send_limit",
				Inputs:      map[string]any{"line": "{line}"},
				Outputs:     []string{"P_max_send"},
			},
			{
				ID:          "step2",
				Kind:        models.StepToolCall,
				Description: "query the receiving-end limit",
				ToolName:    "query_recv_limit",
				Inputs:      map[string]any{"line": "{line}"},
				Outputs:     []string{"P_max_receive"},
			},
			{
				ID:          "step3",
				Kind:        models.StepCompute,
				Description: "take the smaller of the two limits",
				Formula:     "min(P_max_send, P_max_receive)",
				Inputs: map[string]any{
					"P_max_send":    "{P_max_send}",
					"P_max_receive": "{P_max_receive}",
				},
				Outputs: []string{"P_max_net"},
			},
		},
		PlanInputs:  map[string]string{"line": "DC line name"},
		PlanOutputs: []string{"P_max_net"},
		Tags:        []string{"transfer", "limit"},
	}
}

func newTestController() *Controller {
	registry := tools.NewRegistry()
	tools.RegisterGridTools(registry)
	handler := steps.NewHandler(registry, retrieval.NewKeywordRetriever(retrieval.DefaultKnowledge()))

	router := executors.NewRouter()
	router.Register(executors.NewSequential(handler))

	library := plans.NewLibrary()
	library.Add(limitPlan())

	return New(library, router)
}

func TestProcessByPlanID(t *testing.T) {
	c := newTestController()

	result, err := c.Process(context.Background(), Request{
		PlanID:   "dc_transfer_limit",
		Scenario: "LineA limit check",
		Inputs:   map[string]any{"line": "LineA"},
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3000.0, result.FinalOutputs["P_max_net"])

	archived, found := c.Result(result.ExecutionID)
	require.True(t, found)
	assert.Equal(t, result, archived)
}

func TestProcessSelectsPlanFromScenario(t *testing.T) {
	c := newTestController()

	result, err := c.Process(context.Background(), Request{
		Scenario: "what is the net transfer limit of LineB",
		Inputs:   map[string]any{"line": "LineB"},
	})
	require.NoError(t, err)

	assert.Equal(t, "dc_transfer_limit", result.PlanID)
	assert.Equal(t, 2600.0, result.FinalOutputs["P_max_net"])
}

func TestProcessUnknownPlan(t *testing.T) {
	c := newTestController()

	_, err := c.Process(context.Background(), Request{PlanID: "no_such_plan", Scenario: "whatever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown plan")
}

func TestProcessUnknownStrategy(t *testing.T) {
	c := newTestController()

	_, err := c.Process(context.Background(), Request{
		PlanID:   "dc_transfer_limit",
		Scenario: "LineA limit check",
		Inputs:   map[string]any{"line": "LineA"},
		Strategy: "langgraph",
	})

	var unknown *executors.UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
}

func TestProcessMissingInputIsArchived(t *testing.T) {
	c := newTestController()

	result, err := c.Process(context.Background(), Request{
		PlanID:   "dc_transfer_limit",
		Scenario: "LineA limit check",
	})

	var missing *executors.MissingInputError
	require.True(t, errors.As(err, &missing))
	require.NotNil(t, result)

	archived, found := c.Result(result.ExecutionID)
	require.True(t, found)
	assert.Equal(t, models.StatusFailed, archived.Status)
}

func TestClassify(t *testing.T) {
	c := newTestController()

	analysis, err := c.Classify("dc_transfer_limit")
	require.NoError(t, err)
	assert.Equal(t, models.ComplexityLinear, analysis.Level)

	_, err = c.Classify("no_such_plan")
	assert.Error(t, err)
}

func TestPlans(t *testing.T) {
	c := newTestController()

	list := c.Plans()
	require.Len(t, list, 1)
	assert.Equal(t, "dc_transfer_limit", list[0].PlanID)
}
