// Package tools is the tool facade consumed by tool-call steps. Registries are
// plain values constructed by the caller so that engines with different tool
// sets can coexist in one process.
package tools

import (
	"context"
	"fmt"
)

// Result is the facade-level outcome of one tool invocation. A failure here is
// reported through Success/Error, not through a Go error; the engine decides
// what a failure means for the run.
type Result struct {
	ToolName string `json:"tool_name"`
	Success  bool   `json:"success"`
	Value    any    `json:"result,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error_message,omitempty"`
}

// Tool is one invokable capability.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, args map[string]any) Result
}

// InvocationError is raised by the engine when a tool reports failure.
type InvocationError struct {
	Tool    string
	Message string
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("tool %q failed: %s", e.Tool, e.Message)
}

func ok(name string, value any, unit, source string) Result {
	return Result{ToolName: name, Success: true, Value: value, Unit: unit, Source: source}
}

func fail(name, format string, args ...any) Result {
	return Result{ToolName: name, Success: false, Error: fmt.Sprintf(format, args...)}
}
