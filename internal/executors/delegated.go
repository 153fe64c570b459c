package executors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	coordinator "go-preplan/internal/agents/coordinator/actor"
	"go-preplan/internal/steps"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/messages"
	"go-preplan/pkg/models"
)

const defaultDelegatedTimeout = 5 * time.Minute

// Delegated is the agentic strategy for multi-agent plans: a coordinator
// actor owns the run and farms each step out to a worker actor. The caller
// still sees a plain synchronous Execute.
type Delegated struct {
	system  *actor.ActorSystem
	handler *steps.Handler
	timeout time.Duration
}

func NewDelegated(system *actor.ActorSystem, handler *steps.Handler, timeout time.Duration) *Delegated {
	if timeout <= 0 {
		timeout = defaultDelegatedTimeout
	}
	return &Delegated{
		system:  system,
		handler: handler,
		timeout: timeout,
	}
}

func (e *Delegated) Name() string { return "delegated" }

func (e *Delegated) Execute(ctx context.Context, plan *models.Plan, scenario string, inputs map[string]any) (*models.ExecutionResult, error) {
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

	decider := func(reason interface{}) actor.Directive {
		l.Error().Msgf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	strategy := actor.NewOneForOneStrategy(3, 10000, decider)

	props := actor.PropsFromProducer(coordinator.New(e.handler), actor.WithSupervisor(strategy))
	pid := e.system.Root.Spawn(props)

	wait := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
	}

	future := e.system.Root.RequestFuture(pid, messages.ExecutePlan{
		ExecutionID: state.ExecutionID,
		Plan:        plan,
		Scenario:    scenario,
		Inputs:      inputs,
	}, wait)

	res, err := future.Result() // blocking
	if err != nil {
		e.system.Root.Stop(pid)
		if ctx.Err() != nil {
			state.Status = models.StatusCancelled
			state.ErrorMsg = "execution cancelled"
			l.Warn().Str(logger.ExecutionField, state.ExecutionID).Msg("execution cancelled")
		} else {
			state.Status = models.StatusFailed
			state.ErrorMsg = "delegated execution timed out: " + err.Error()
			l.Error().Err(err).Str(logger.ExecutionField, state.ExecutionID).Msg("no result from coordinator")
		}
		return models.Snapshot(state, time.Since(start)), nil
	}

	complete, ok := res.(messages.ExecutionComplete)
	if !ok {
		state.Status = models.StatusFailed
		state.ErrorMsg = "unexpected reply from coordinator"
		l.Error().Str(logger.ExecutionField, state.ExecutionID).Msgf("unexpected reply: %v", res)
		return models.Snapshot(state, time.Since(start)), nil
	}

	return complete.Result, nil
}
