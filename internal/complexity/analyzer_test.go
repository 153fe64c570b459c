package complexity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-preplan/pkg/models"
)

func limitPlan() *models.Plan {
	return &models.Plan{
		PlanID:      "dc_transfer_limit",
		Title:       "DC transfer limit",
		Description: "compute the net transfer limit of a DC line",
		Steps: []models.Step{
			{ID: "step1", Kind: models.StepToolCall, Description: "query the sending-end limit", ToolName: "query_send_limit", Outputs: []string{"P_max_send"}},
			{ID: "step2", Kind: models.StepToolCall, Description: "query the receiving-end limit", ToolName: "query_recv_limit", Outputs: []string{"P_max_receive"}},
			{ID: "step3", Kind: models.StepCompute, Description: "take the smaller of the two limits", Formula: "min(P_max_send, P_max_receive)", Outputs: []string{"P_max_net"}},
		},
		Variables: []models.Variable{
			{Name: "sending-end limit", Symbol: "P_max_send", Unit: "MW"},
			{Name: "receiving-end limit", Symbol: "P_max_receive", Unit: "MW"},
			{Name: "net limit", Symbol: "P_max_net", Unit: "MW"},
		},
	}
}

func TestClassifyLinear(t *testing.T) {
	analysis := Classify(limitPlan())

	assert.Equal(t, models.ComplexityLinear, analysis.Level)
	assert.Equal(t, 3, analysis.StepCount)
	assert.Equal(t, 2, analysis.StepKinds[models.StepToolCall])
	assert.Equal(t, 1, analysis.StepKinds[models.StepCompute])
	assert.Equal(t, "simple", analysis.Variables.Tier)
	assert.Equal(t, "sequential", analysis.RecommendedStrategy)
}

func TestClassifyIsDeterministic(t *testing.T) {
	plan := limitPlan()
	first := Classify(plan)
	second := Classify(plan)
	assert.Equal(t, first, second)
}

func TestClassifyConditionalLanguageIsBranch(t *testing.T) {
	plan := limitPlan()
	plan.Steps[2].Description = "if the sending-end limit is lower, use it"

	analysis := Classify(plan)
	assert.Equal(t, models.ComplexityBranch, analysis.Level)
	assert.True(t, analysis.HasConditions)
}

func TestClassifyConditionKeywordsMatchWholeWords(t *testing.T) {
	plan := limitPlan()
	// "specification" contains "if" but is not conditional language
	plan.Steps[0].Description = "query the limit per the line specification"

	analysis := Classify(plan)
	assert.False(t, analysis.HasConditions)
	assert.Equal(t, models.ComplexityLinear, analysis.Level)
}

func TestClassifyComplexFormulaTierIsBranch(t *testing.T) {
	plan := limitPlan()
	plan.Variables = []models.Variable{
		{Name: "a", Symbol: "a", Unit: "MW", Formula: "min(x, y)"},
		{Name: "b", Symbol: "b", Unit: "MW", Formula: "max(x, y)"},
		{Name: "c", Symbol: "c", Unit: "MW", Formula: "sum(x, y)"},
	}

	analysis := Classify(plan)
	assert.Equal(t, models.ComplexityBranch, analysis.Level)
	assert.Equal(t, "complex", analysis.Variables.Tier)
	assert.Len(t, analysis.Variables.ComplexFormulas, 3)
}

func TestClassifyModerateTierStaysLinear(t *testing.T) {
	plan := limitPlan()
	plan.Variables[2].Formula = "min(P_max_send, P_max_receive)"

	analysis := Classify(plan)
	assert.Equal(t, models.ComplexityLinear, analysis.Level)
	assert.Equal(t, "moderate", analysis.Variables.Tier)
}

func TestClassifyManyStepsIsMultiAgent(t *testing.T) {
	plan := limitPlan()
	plan.Steps = nil
	for i := 0; i < 21; i++ {
		plan.Steps = append(plan.Steps, models.Step{
			ID:          fmt.Sprintf("step%d", i),
			Kind:        models.StepToolCall,
			Description: "query a limit",
			ToolName:    "query_send_limit",
			Outputs:     []string{fmt.Sprintf("out%d", i)},
		})
	}

	analysis := Classify(plan)
	assert.Equal(t, models.ComplexityMultiAgent, analysis.Level)
	assert.Equal(t, "delegated", analysis.RecommendedStrategy)
}

func TestClassifyDomainSpreadIsMultiAgent(t *testing.T) {
	plan := limitPlan()
	require.Len(t, plan.Steps, 3)
	plan.Steps = append(plan.Steps, models.Step{
		ID:          "step4",
		Kind:        models.StepRetrieve,
		Description: "check protection signal routing for the line",
		Query:       "protection signal routing",
		Outputs:     []string{"routing"},
	})
	plan.Description = "voltage and temperature constrained transfer limit"

	analysis := Classify(plan)
	assert.Equal(t, models.ComplexityMultiAgent, analysis.Level)
	assert.GreaterOrEqual(t, len(analysis.Domains), 3)
}

func TestClassifyDependencyDetection(t *testing.T) {
	plan := limitPlan()
	plan.Steps[2].Inputs = map[string]any{
		"P_max_send":    "{P_max_send}",
		"P_max_receive": "{P_max_receive}",
	}

	analysis := Classify(plan)
	assert.True(t, analysis.HasDependencies)
	// diagnostic only, classification unchanged
	assert.Equal(t, models.ComplexityLinear, analysis.Level)
}
