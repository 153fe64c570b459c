// Package controller ties the pipeline together: pick a plan for a scenario,
// classify it, route it to a strategy and run it.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"go-preplan/internal/complexity"
	"go-preplan/internal/executors"
	"go-preplan/internal/plans"
	"go-preplan/pkg/logger"
	"go-preplan/pkg/models"
)

// Request describes one scenario to process. PlanID and Strategy are optional
// overrides; without them the library picks a plan and the router picks a
// strategy from the complexity verdict.
type Request struct {
	PlanID   string         `json:"plan_id,omitempty"`
	Scenario string         `json:"scenario"`
	Inputs   map[string]any `json:"inputs,omitempty"`
	Strategy string         `json:"strategy,omitempty"`
}

type Controller struct {
	library *plans.Library
	router  *executors.Router

	mu      sync.RWMutex
	archive map[string]*models.ExecutionResult
}

func New(library *plans.Library, router *executors.Router) *Controller {
	return &Controller{
		library: library,
		router:  router,
		archive: map[string]*models.ExecutionResult{},
	}
}

// Process runs one scenario end to end and archives the terminal result.
func (c *Controller) Process(ctx context.Context, req Request) (*models.ExecutionResult, error) {
	plan, err := c.resolvePlan(req)
	if err != nil {
		return nil, err
	}

	analysis := complexity.Classify(plan)
	log.Info().
		Str(logger.PlanField, plan.PlanID).
		Msgf("plan complexity: %s (%s)", analysis.Level, analysis.Reason)

	ex, err := c.router.Route(analysis.Level, req.Strategy)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str(logger.PlanField, plan.PlanID).
		Str(logger.StrategyField, ex.Name()).
		Msg("strategy selected")

	result, err := ex.Execute(ctx, plan, req.Scenario, req.Inputs)
	if result != nil {
		c.mu.Lock()
		c.archive[result.ExecutionID] = result
		c.mu.Unlock()
	}
	return result, err
}

// Result returns an archived execution result.
func (c *Controller) Result(executionID string) (*models.ExecutionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, found := c.archive[executionID]
	return r, found
}

// Plans lists the library contents.
func (c *Controller) Plans() []*models.Plan {
	return c.library.List()
}

// Classify runs the complexity classifier for one plan id.
func (c *Controller) Classify(planID string) (*models.ComplexityAnalysis, error) {
	plan, found := c.library.Get(planID)
	if !found {
		return nil, fmt.Errorf("unknown plan: %s", planID)
	}
	return complexity.Classify(plan), nil
}

func (c *Controller) resolvePlan(req Request) (*models.Plan, error) {
	if req.PlanID != "" {
		plan, found := c.library.Get(req.PlanID)
		if !found {
			return nil, fmt.Errorf("unknown plan: %s", req.PlanID)
		}
		return plan, nil
	}
	return c.library.Select(req.Scenario)
}
