package messages

import (
	"go-preplan/pkg/models"
)

// ExecutePlan asks a coordinator actor to run one plan end to end. The sender
// receives an ExecutionComplete once the run reaches a terminal status.
type ExecutePlan struct {
	ExecutionID string
	Plan        *models.Plan
	Scenario    string
	Inputs      map[string]any
}

// RunStep asks a worker actor to execute a single step against a snapshot of
// the variable table.
type RunStep struct {
	ExecutionID string
	Step        models.Step
	Variables   map[string]any
}

// StepOutcome is the worker's reply for one step.
type StepOutcome struct {
	StepID  string
	Outputs map[string]any
	Error   string
}

// ExecutionComplete carries the terminal result back to the requester.
type ExecutionComplete struct {
	Result *models.ExecutionResult
}
