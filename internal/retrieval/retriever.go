// Package retrieval is the retrieval facade consumed by rag steps. The engine
// only depends on the Retriever interface; implementations are owned by the
// caller.
package retrieval

import (
	"context"
	"fmt"
)

// Result is the facade-level outcome of one query.
type Result struct {
	Query      string   `json:"query"`
	Success    bool     `json:"success"`
	Answer     string   `json:"answer,omitempty"`
	Raw        any      `json:"raw,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	ErrMessage string   `json:"error_message,omitempty"`
}

// Retriever answers a free-text query with ranked supporting material.
type Retriever interface {
	Query(ctx context.Context, text string) (Result, error)
}

// Error is raised by the engine when the facade reports a failed query.
type Error struct {
	Query   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("retrieval failed for %q: %s", e.Query, e.Message)
}
