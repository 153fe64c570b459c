package executors

import (
	"fmt"
	"sync"

	"go-preplan/pkg/models"
)

const (
	StrategySequential = "sequential"
	StrategyDelegated  = "delegated"
)

// UnknownStrategyError reports an explicit strategy name that is not
// registered. Explicit names never silently fall back.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown execution strategy: %q", e.Name)
}

// Router maps a complexity level, or an explicit override, to a registered
// execution strategy. Routers are caller-constructed so different tool sets
// can run side by side.
type Router struct {
	mu         sync.RWMutex
	strategies map[string]Executor
}

func NewRouter() *Router {
	return &Router{
		strategies: map[string]Executor{},
	}
}

func (r *Router) Register(ex Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[ex.Name()] = ex
}

// Route picks a strategy. An explicit name wins when registered; otherwise
// linear and branch plans run sequentially and multi-agent plans are delegated.
func (r *Router) Route(level models.ComplexityLevel, explicit string) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if explicit != "" {
		ex, found := r.strategies[explicit]
		if !found {
			return nil, &UnknownStrategyError{Name: explicit}
		}
		return ex, nil
	}

	name := StrategySequential
	if level == models.ComplexityMultiAgent {
		name = StrategyDelegated
	}
	ex, found := r.strategies[name]
	if !found {
		return nil, &UnknownStrategyError{Name: name}
	}
	return ex, nil
}
