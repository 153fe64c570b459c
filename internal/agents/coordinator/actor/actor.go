package actor

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	worker "go-preplan/internal/agents/worker/actor"
	"go-preplan/internal/steps"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/messages"
	"go-preplan/pkg/models"
)

// Coordinator owns one delegated execution: the step queue, the variable
// table and the history. It spawns one worker per step and applies outcomes
// in declared order, so the run semantics match the sequential strategy.
type Coordinator struct {
	handler *steps.Handler

	plan      *models.Plan
	state     *models.ExecutionState
	start     time.Time
	next      int
	requester *actor.PID
}

func New(handler *steps.Handler) actor.Producer {
	return func() actor.Actor {
		return &Coordinator{handler: handler}
	}
}

func (agent *Coordinator) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), "agent": "coordinator"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case *actor.Terminated:
		l.Debug().Msg("child actor terminated")
	case messages.ExecutePlan:
		l.Debug().Str(logger.ExecutionField, msg.ExecutionID).Msgf("ExecutePlan received: %s", msg.Plan.PlanID)
		agent.requester = ac.Sender()
		agent.plan = msg.Plan
		agent.start = time.Now()

		vars := make(map[string]any, len(msg.Inputs))
		for k, v := range msg.Inputs {
			vars[k] = v
		}
		agent.state = &models.ExecutionState{
			PlanID:      msg.Plan.PlanID,
			ExecutionID: msg.ExecutionID,
			Scenario:    msg.Scenario,
			Inputs:      msg.Inputs,
			Variables:   vars,
			Status:      models.StatusRunning,
		}

		l.Info().Str(logger.ExecutionField, msg.ExecutionID).Str(logger.PlanField, msg.Plan.PlanID).Msg("delegated execution started")
		agent.dispatch(ac)
	case messages.StepOutcome:
		l.Debug().Str(logger.StepField, msg.StepID).Msgf("StepOutcome received from worker: success=%v", msg.Error == "")
		agent.apply(ac, msg)
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

// dispatch hands the next step to a fresh worker. Steps run one at a time;
// step N may depend on the outputs of step N-1.
func (agent *Coordinator) dispatch(ac actor.Context) {
	step := agent.plan.Steps[agent.next]
	agent.state.CurrentStep = step.ID

	vars := make(map[string]any, len(agent.state.Variables))
	for k, v := range agent.state.Variables {
		vars[k] = v
	}

	props := actor.PropsFromProducer(worker.New(agent.handler))
	child := ac.Spawn(props)
	ac.Send(child, messages.RunStep{
		ExecutionID: agent.state.ExecutionID,
		Step:        step,
		Variables:   vars,
	})
}

func (agent *Coordinator) apply(ac actor.Context, outcome messages.StepOutcome) {
	step := agent.plan.Steps[agent.next]
	record := models.StepRecord{
		StepID:      step.ID,
		Kind:        step.Kind,
		Description: step.Description,
		Timestamp:   time.Now(),
	}

	if outcome.Error != "" {
		record.Error = outcome.Error
		agent.state.Record(record)
		agent.state.Status = models.StatusFailed
		agent.state.ErrorMsg = outcome.Error
		agent.state.FailedStep = step.ID
		agent.finish(ac)
		return
	}

	for symbol, value := range outcome.Outputs {
		agent.state.Bind(symbol, value)
	}
	record.Success = true
	record.Outputs = outcome.Outputs
	agent.state.Record(record)

	agent.next++
	if agent.next >= len(agent.plan.Steps) {
		agent.state.Status = models.StatusCompleted
		for _, symbol := range agent.state.ExtractOutputs(agent.plan.PlanOutputs) {
			log.Warn().Str(logger.ExecutionField, agent.state.ExecutionID).Msgf("declared plan output never bound: %s", symbol)
		}
		agent.finish(ac)
		return
	}

	agent.dispatch(ac)
}

func (agent *Coordinator) finish(ac actor.Context) {
	result := models.Snapshot(agent.state, time.Since(agent.start))
	log.Info().
		Str(logger.ExecutionField, agent.state.ExecutionID).
		Msgf("delegated execution finished: %s", agent.state.Status)
	ac.Send(agent.requester, messages.ExecutionComplete{Result: result})
	ac.Stop(ac.Self())
}
