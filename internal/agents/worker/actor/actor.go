package actor

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	"go-preplan/internal/steps"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/messages"
)

// Worker executes exactly one step and reports the outcome to its parent
// coordinator, then stops itself.
type Worker struct {
	handler *steps.Handler
}

func New(handler *steps.Handler) actor.Producer {
	return func() actor.Actor {
		return &Worker{handler: handler}
	}
}

func (agent *Worker) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), "agent": "worker"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.RunStep:
		l.Debug().Str(logger.StepField, msg.Step.ID).Msgf("RunStep received: %s", msg.Step.Description)

		// todo plumb the run context through RunStep for per-step cancellation
		outputs, err := agent.handler.Execute(context.Background(), msg.Step, msg.Variables)
		outcome := messages.StepOutcome{StepID: msg.Step.ID}
		if err != nil {
			l.Error().Err(err).Str(logger.StepField, msg.Step.ID).Msg("step failed")
			outcome.Error = err.Error()
		} else {
			outcome.Outputs = outputs
		}

		ac.Send(ac.Parent(), outcome)
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}
