package api

import (
	"sync"

	"github.com/google/uuid"

	"go-preplan/pkg/models"
)

type entry struct {
	status models.ExecutionStatus
	result *models.ExecutionResult
	err    string
}

// requestsCache tracks submitted executions by request id. Runs happen on
// background goroutines, so access is guarded.
type requestsCache struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]*entry
}

func newRequestsCache() *requestsCache {
	return &requestsCache{
		ids: map[uuid.UUID]*entry{},
	}
}

func (s *requestsCache) add(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = &entry{status: models.StatusRunning}
}

func (s *requestsCache) complete(id uuid.UUID, result *models.ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = &entry{status: result.Status, result: result}
}

func (s *requestsCache) fail(id uuid.UUID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = &entry{status: models.StatusFailed, err: message}
}

func (s *requestsCache) get(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, found := s.ids[id]
	return e, found
}
