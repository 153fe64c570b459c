package executors

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"go-preplan/internal/steps"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/models"
)

// compiledStep is one node of the linear step graph.
type compiledStep struct {
	step models.Step
	last bool
}

// Sequential is the default strategy: a small state machine that runs the
// plan's steps strictly in declared order. Compiled step graphs are cached per
// plan id; a published graph is never mutated, so concurrent runs may share it.
type Sequential struct {
	handler *steps.Handler

	mu       sync.RWMutex
	compiled map[string][]compiledStep
}

func NewSequential(handler *steps.Handler) *Sequential {
	return &Sequential{
		handler:  handler,
		compiled: map[string][]compiledStep{},
	}
}

func (e *Sequential) Name() string { return "sequential" }

// Invalidate drops the cached step graph for a plan. Callers must invalidate
// when a plan's content changes under an existing plan id.
func (e *Sequential) Invalidate(planID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.compiled, planID)
}

func (e *Sequential) graph(plan *models.Plan) []compiledStep {
	e.mu.RLock()
	g, found := e.compiled[plan.PlanID]
	e.mu.RUnlock()
	if found {
		return g
	}

	g = make([]compiledStep, len(plan.Steps))
	for i, step := range plan.Steps {
		g[i] = compiledStep{step: step, last: i == len(plan.Steps)-1}
	}

	e.mu.Lock()
	e.compiled[plan.PlanID] = g
	e.mu.Unlock()
	return g
}

// Execute drives the pending -> running -> terminal state machine. Step errors
// become a failed result, not a Go error; only pre-run validation errors are
// returned directly.
func (e *Sequential) Execute(ctx context.Context, plan *models.Plan, scenario string, inputs map[string]any) (*models.ExecutionResult, error) {
	l := log.With().
		Str(logger.PlanField, plan.PlanID).
		Str(logger.StrategyField, e.Name()).
		Logger()
	start := time.Now()

	state := newState(plan, scenario, inputs)
	if err := validateInputs(plan, inputs); err != nil {
		l.Error().Err(err).Msg("input validation failed")
		state.Status = models.StatusFailed
		state.ErrorMsg = err.Error()
		return models.Snapshot(state, time.Since(start)), err
	}

	state.Status = models.StatusRunning
	l.Info().Str(logger.ExecutionField, state.ExecutionID).Msg("execution started")

	for _, node := range e.graph(plan) {
		if err := ctx.Err(); err != nil {
			state.Status = models.StatusCancelled
			state.ErrorMsg = "execution cancelled"
			l.Warn().Str(logger.ExecutionField, state.ExecutionID).Msg("execution cancelled")
			return models.Snapshot(state, time.Since(start)), nil
		}

		step := node.step
		state.CurrentStep = step.ID
		l.Info().Str(logger.StepField, step.ID).Msgf("executing step: %s", step.Description)

		outputs, err := e.handler.Execute(ctx, step, state.Variables)
		record := models.StepRecord{
			StepID:      step.ID,
			Kind:        step.Kind,
			Description: step.Description,
			Timestamp:   time.Now(),
		}
		if err != nil {
			record.Error = err.Error()
			state.Record(record)
			state.Status = models.StatusFailed
			state.ErrorMsg = err.Error()
			state.FailedStep = step.ID
			l.Error().Err(err).Str(logger.StepField, step.ID).Msg("step failed")
			return models.Snapshot(state, time.Since(start)), nil
		}

		for symbol, value := range outputs {
			state.Bind(symbol, value)
		}
		record.Success = true
		record.Outputs = outputs
		state.Record(record)

		if node.last {
			state.Status = models.StatusCompleted
		}
	}

	for _, symbol := range state.ExtractOutputs(plan.PlanOutputs) {
		l.Warn().Str(logger.ExecutionField, state.ExecutionID).Msgf("declared plan output never bound: %s", symbol)
	}

	l.Info().Str(logger.ExecutionField, state.ExecutionID).Msg("execution completed")
	return models.Snapshot(state, time.Since(start)), nil
}
