package models

import "time"

// ExecutionStatus is the state-machine status of one run.
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "pending"
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusFailed    ExecutionStatus = "failed" // dead state
	StatusCancelled ExecutionStatus = "cancelled"
)

// Terminal reports whether no further steps may run in this status.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// StepRecord is one entry of the append-only step history.
type StepRecord struct {
	StepID      string         `json:"step_id"`
	Kind        StepKind       `json:"step_type"`
	Description string         `json:"description"`
	Success     bool           `json:"success"`
	Outputs     map[string]any `json:"outputs,omitempty"`
	Error       string         `json:"error,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// ExecutionState is the mutable per-run record. It is owned by exactly one
// executor goroutine and never shared between runs.
type ExecutionState struct {
	PlanID      string          `json:"plan_id"`
	ExecutionID string          `json:"execution_id"`
	Scenario    string          `json:"scenario"`
	Inputs      map[string]any  `json:"inputs"`
	Variables   map[string]any  `json:"variables"`
	CurrentStep string          `json:"current_step,omitempty"`
	Status      ExecutionStatus `json:"status"`
	StepHistory []StepRecord    `json:"step_history"`
	ErrorMsg    string          `json:"error_message,omitempty"`
	FailedStep  string          `json:"failed_step,omitempty"`
	FinalOut    map[string]any  `json:"final_outputs,omitempty"`
}

// Bind writes a symbol into the variable table.
func (s *ExecutionState) Bind(symbol string, value any) {
	s.Variables[symbol] = value
}

// Record appends one step outcome to the history.
func (s *ExecutionState) Record(r StepRecord) {
	s.StepHistory = append(s.StepHistory, r)
}

// ExtractOutputs copies declared plan outputs from the variable table into
// FinalOut and returns the declared symbols that were never bound.
func (s *ExecutionState) ExtractOutputs(declared []string) []string {
	s.FinalOut = make(map[string]any, len(declared))
	var unbound []string
	for _, symbol := range declared {
		if v, ok := s.Variables[symbol]; ok {
			s.FinalOut[symbol] = v
		} else {
			unbound = append(unbound, symbol)
		}
	}
	return unbound
}

// Snapshot derives an immutable result from a terminal state.
func Snapshot(s *ExecutionState, elapsed time.Duration) *ExecutionResult {
	return &ExecutionResult{
		ExecutionID:   s.ExecutionID,
		PlanID:        s.PlanID,
		Success:       s.Status == StatusCompleted,
		Status:        s.Status,
		Scenario:      s.Scenario,
		FinalOutputs:  s.FinalOut,
		Variables:     s.Variables,
		StepResults:   s.StepHistory,
		ExecutionTime: elapsed,
		ErrorMessage:  s.ErrorMsg,
		FailedStep:    s.FailedStep,
	}
}

// ExecutionResult is the immutable snapshot derived from a terminal state.
type ExecutionResult struct {
	ExecutionID string          `json:"execution_id"`
	PlanID      string          `json:"plan_id"`
	Success     bool            `json:"success"`
	Status      ExecutionStatus `json:"status"`

	Scenario     string         `json:"scenario"`
	FinalOutputs map[string]any `json:"final_outputs"`
	Variables    map[string]any `json:"variables"`

	StepResults   []StepRecord  `json:"step_results"`
	ExecutionTime time.Duration `json:"execution_time"`

	ErrorMessage string `json:"error_message,omitempty"`
	FailedStep   string `json:"failed_step,omitempty"`
}
