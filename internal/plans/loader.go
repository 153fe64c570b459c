// Package plans loads pre-authored plan documents and keeps a library of them.
// Validation here is structural only; unresolved placeholders and the like are
// reported per step at run time so errors stay local to the failing step.
package plans

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"go-preplan/pkg/models"
)

// SchemaError reports a malformed plan document, detected at load time.
type SchemaError struct {
	PlanID  string
	Message string
}

func (e *SchemaError) Error() string {
	if e.PlanID == "" {
		return fmt.Sprintf("invalid plan: %s", e.Message)
	}
	return fmt.Sprintf("invalid plan %q: %s", e.PlanID, e.Message)
}

// Load parses one plan document. YAML and JSON are both accepted since every
// plan file in the library is one or the other.
func Load(data []byte) (*models.Plan, error) {
	var plan models.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("parse: %v", err)}
	}
	if err := Validate(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate enforces the structural invariants of a plan document.
func Validate(plan *models.Plan) error {
	if plan.PlanID == "" {
		return &SchemaError{Message: "missing plan_id"}
	}
	if plan.Title == "" {
		return &SchemaError{PlanID: plan.PlanID, Message: "missing title"}
	}
	if plan.Description == "" {
		return &SchemaError{PlanID: plan.PlanID, Message: "missing description"}
	}
	if len(plan.Steps) == 0 {
		return &SchemaError{PlanID: plan.PlanID, Message: "plan has no steps"}
	}

	seen := map[string]bool{}
	for i, step := range plan.Steps {
		if step.ID == "" {
			return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("step %d has no id", i)}
		}
		if seen[step.ID] {
			return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("duplicate step id %q", step.ID)}
		}
		seen[step.ID] = true

		if !step.Kind.Valid() {
			return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("step %q has unknown type %q", step.ID, step.Kind)}
		}
		if step.Description == "" {
			return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("step %q has no description", step.ID)}
		}
		if step.Outputs == nil {
			return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("step %q has no outputs", step.ID)}
		}

		switch step.Kind {
		case models.StepRetrieve:
			if step.Query == "" {
				return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("rag step %q requires query", step.ID)}
			}
		case models.StepToolCall:
			if step.ToolName == "" {
				return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("tool step %q requires tool_name", step.ID)}
			}
		case models.StepCompute:
			if step.Formula == "" {
				return &SchemaError{PlanID: plan.PlanID, Message: fmt.Sprintf("compute step %q requires formula", step.ID)}
			}
		}
	}

	return nil
}
