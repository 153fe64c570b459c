package models

// ComplexityLevel classifies how a plan should be executed.
type ComplexityLevel string

const (
	ComplexityLinear     ComplexityLevel = "linear"
	ComplexityBranch     ComplexityLevel = "branch"
	ComplexityMultiAgent ComplexityLevel = "multi_agent"
)

// VariableComplexity summarises the declared variable formulas of a plan.
type VariableComplexity struct {
	Tier            string   `json:"tier"` // simple, moderate or complex
	FormulaCount    int      `json:"formula_count"`
	ComplexFormulas []string `json:"complex_formulas,omitempty"`
}

// ComplexityAnalysis is the classifier verdict for one plan. It is computed
// fresh on every call and carries the counters the verdict was based on.
type ComplexityAnalysis struct {
	PlanID string          `json:"plan_id"`
	Level  ComplexityLevel `json:"level"`
	Reason string          `json:"reason"`

	StepCount       int                `json:"step_count"`
	StepKinds       map[StepKind]int   `json:"step_types"`
	HasDependencies bool               `json:"has_dependencies"`
	HasConditions   bool               `json:"has_conditions"`
	Variables       VariableComplexity `json:"variable_complexity"`
	Domains         []string           `json:"domains,omitempty"`

	RecommendedStrategy string `json:"recommended_strategy"`
}
