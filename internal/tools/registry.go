package tools

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"go-preplan/pkg/logger"
)

// Registry maps tool names to implementations. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: map[string]Tool{},
	}
}

func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
	log.Debug().Str(logger.ToolField, t.Name()).Msg("tool registered")
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, found := r.tools[name]
	return t, found
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs a tool by name. An unknown name is a facade-level failure and is
// reported through the result, never through a panic or a lookup error.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) Result {
	t, found := r.Get(name)
	if !found {
		log.Warn().Str(logger.ToolField, name).Msg("unknown tool requested")
		return fail(name, "unknown tool: %s", name)
	}

	res := t.Invoke(ctx, args)
	if res.Success {
		log.Debug().Str(logger.ToolField, name).Msgf("tool succeeded: %v", res.Value)
	} else {
		log.Warn().Str(logger.ToolField, name).Msgf("tool failed: %s", res.Error)
	}
	return res
}
