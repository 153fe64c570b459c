// Package steps executes single plan steps against a variable table. Both
// execution strategies share the same handler, so per-kind semantics live in
// exactly one place.
package steps

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"go-preplan/internal/retrieval"
	"go-preplan/internal/tools"
	"go-preplan/pkg/formula"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/models"
)

// Handler dispatches one step to its kind-specific execution path.
type Handler struct {
	tools     *tools.Registry
	retriever retrieval.Retriever
}

func NewHandler(registry *tools.Registry, retriever retrieval.Retriever) *Handler {
	return &Handler{
		tools:     registry,
		retriever: retriever,
	}
}

// Execute runs a single step and returns the symbols it binds. The variable
// table is read-only here; the caller applies the returned outputs.
func (h *Handler) Execute(ctx context.Context, step models.Step, vars map[string]any) (map[string]any, error) {
	switch step.Kind {
	case models.StepRetrieve:
		return h.retrieve(ctx, step, vars)
	case models.StepToolCall:
		return h.toolCall(ctx, step, vars)
	case models.StepCompute:
		return h.compute(step, vars)
	default:
		return nil, fmt.Errorf("unsupported step kind: %s", step.Kind)
	}
}

func (h *Handler) retrieve(ctx context.Context, step models.Step, vars map[string]any) (map[string]any, error) {
	query := Substitute(step.Query, vars)

	res, err := h.retriever.Query(ctx, query)
	if err != nil {
		return nil, &retrieval.Error{Query: query, Message: err.Error()}
	}
	if !res.Success {
		return nil, &retrieval.Error{Query: query, Message: res.ErrMessage}
	}

	outputs := map[string]any{}
	for i, symbol := range step.Outputs {
		if i == 0 {
			outputs[symbol] = res.Answer
		} else {
			outputs[symbol] = res.Raw
		}
	}
	return outputs, nil
}

func (h *Handler) toolCall(ctx context.Context, step models.Step, vars map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(step.Inputs))
	for key, value := range step.Inputs {
		if s, isString := value.(string); isString {
			args[key] = Substitute(s, vars)
		} else {
			args[key] = value
		}
	}

	res := h.tools.Invoke(ctx, step.ToolName, args)
	if !res.Success {
		return nil, &tools.InvocationError{Tool: step.ToolName, Message: res.Error}
	}

	outputs := map[string]any{}
	if len(step.Outputs) > 0 {
		outputs[step.Outputs[0]] = res.Value
	}
	return outputs, nil
}

func (h *Handler) compute(step models.Step, vars map[string]any) (map[string]any, error) {
	bindings := make(map[string]any, len(step.Inputs))
	for key, value := range step.Inputs {
		if symbol, isRef := Reference(value); isRef {
			bound, found := vars[symbol]
			if !found {
				return nil, &formula.UnboundSymbolError{Symbol: symbol}
			}
			bindings[key] = bound
		} else {
			bindings[key] = value
		}
	}

	result, err := formula.Evaluate(step.Formula, bindings)
	if err != nil {
		return nil, err
	}
	log.Debug().Str(logger.StepField, step.ID).Msgf("formula %s = %v", step.Formula, result)

	outputs := map[string]any{}
	if len(step.Outputs) > 0 {
		outputs[step.Outputs[0]] = result
	}
	return outputs, nil
}
