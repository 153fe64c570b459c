package models

// StepKind is the closed set of step types a plan may contain.
type StepKind string

const (
	StepRetrieve StepKind = "rag"
	StepToolCall StepKind = "tool"
	StepCompute  StepKind = "compute"
)

// Valid reports whether k is one of the declared step kinds.
func (k StepKind) Valid() bool {
	switch k {
	case StepRetrieve, StepToolCall, StepCompute:
		return true
	}
	return false
}

// Variable is a declared quantity of a plan. Formula is documentation for
// complexity analysis only and is never evaluated by the engine.
type Variable struct {
	Name        string `json:"name" yaml:"name"`
	Symbol      string `json:"symbol" yaml:"symbol"`
	Unit        string `json:"unit" yaml:"unit"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Formula     string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// Step is one unit of work within a plan. Exactly one of Query, ToolName and
// Formula is required depending on Kind; the loader enforces that.
type Step struct {
	ID          string         `json:"id" yaml:"id"`
	Kind        StepKind       `json:"type" yaml:"type"`
	Description string         `json:"description" yaml:"description"`
	Inputs      map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs     []string       `json:"outputs" yaml:"outputs"`

	Query    string `json:"query,omitempty" yaml:"query,omitempty"`
	ToolName string `json:"tool_name,omitempty" yaml:"tool_name,omitempty"`
	Formula  string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// Plan is an immutable, pre-authored procedure. Once loaded it is treated as
// read-only and may be shared across concurrent executions.
type Plan struct {
	PlanID      string `json:"plan_id" yaml:"plan_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`

	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	Steps     []Step     `json:"steps" yaml:"steps"`

	PlanInputs  map[string]string `json:"plan_inputs,omitempty" yaml:"plan_inputs,omitempty"`
	PlanOutputs []string          `json:"plan_outputs,omitempty" yaml:"plan_outputs,omitempty"`

	Author    string   `json:"author,omitempty" yaml:"author,omitempty"`
	CreatedAt string   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
