// Package executors contains the interchangeable execution strategies and the
// router that picks one for a classified plan.
package executors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"go-preplan/pkg/models"
)

// Executor runs one plan to a terminal result. Implementations must not share
// mutable per-run state between calls; a plan may be executed concurrently.
type Executor interface {
	Name() string
	Execute(ctx context.Context, plan *models.Plan, scenario string, inputs map[string]any) (*models.ExecutionResult, error)
}

// MissingInputError names the declared plan inputs the caller did not supply.
// No step runs when this is raised.
type MissingInputError struct {
	PlanID string
	Keys   []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("plan %q missing inputs: %s", e.PlanID, strings.Join(e.Keys, ", "))
}

// validateInputs checks every declared plan input against the supplied map.
func validateInputs(plan *models.Plan, inputs map[string]any) error {
	var missing []string
	for key := range plan.PlanInputs {
		if _, found := inputs[key]; !found {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingInputError{PlanID: plan.PlanID, Keys: missing}
	}
	return nil
}

// newState seeds a fresh execution state. The variable table starts as a copy
// of the caller inputs; it is owned exclusively by this run.
func newState(plan *models.Plan, scenario string, inputs map[string]any) *models.ExecutionState {
	vars := make(map[string]any, len(inputs))
	for k, v := range inputs {
		vars[k] = v
	}
	return &models.ExecutionState{
		PlanID:      plan.PlanID,
		ExecutionID: NewExecutionID(plan.PlanID),
		Scenario:    scenario,
		Inputs:      inputs,
		Variables:   vars,
		Status:      models.StatusPending,
	}
}

// NewExecutionID builds a run id in the plan_id_xxxxxxxx shape.
func NewExecutionID(planID string) string {
	return fmt.Sprintf("%s_%s", planID, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
