package plans

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"go-preplan/pkg/logger"
	"go-preplan/pkg/models"
)

// Library holds the loaded plan documents. Plans are read-only after Add, so
// lookups hand out shared pointers.
type Library struct {
	mu    sync.RWMutex
	plans map[string]*models.Plan
}

func NewLibrary() *Library {
	return &Library{
		plans: map[string]*models.Plan{},
	}
}

func (l *Library) Add(plan *models.Plan) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plans[plan.PlanID] = plan
	log.Debug().Str(logger.PlanField, plan.PlanID).Msg("plan added to library")
}

func (l *Library) Get(planID string) (*models.Plan, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	plan, found := l.plans[planID]
	return plan, found
}

func (l *Library) List() []*models.Plan {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*models.Plan, 0, len(l.plans))
	for _, plan := range l.plans {
		out = append(out, plan)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlanID < out[j].PlanID })
	return out
}

// LoadDir loads every yaml/json plan document under dir. A malformed document
// fails the whole load so a broken library never half-starts.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read plans dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read plan %s: %w", entry.Name(), err)
		}
		plan, err := Load(data)
		if err != nil {
			return fmt.Errorf("load plan %s: %w", entry.Name(), err)
		}
		l.Add(plan)
	}

	log.Info().Msgf("plan library loaded, %d plans", len(l.plans))
	return nil
}

// Select picks the plan whose title, description and tags overlap the scenario
// text the most. Ties break towards the lexicographically first plan id so
// selection stays deterministic.
func (l *Library) Select(scenario string) (*models.Plan, error) {
	lowered := strings.ToLower(scenario)

	var best *models.Plan
	bestScore := 0
	for _, plan := range l.List() {
		score := matchScore(plan, lowered)
		if score > bestScore {
			best, bestScore = plan, score
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no plan matches scenario %q", scenario)
	}

	log.Info().Str(logger.PlanField, best.PlanID).Msgf("plan selected, score %d", bestScore)
	return best, nil
}

func matchScore(plan *models.Plan, scenario string) int {
	score := 0
	for _, token := range tokens(plan.Title + " " + plan.Description) {
		if strings.Contains(scenario, token) {
			score++
		}
	}
	for _, tag := range plan.Tags {
		if strings.Contains(scenario, strings.ToLower(tag)) {
			score += 2
		}
	}
	return score
}

func tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:()")
		if len(f) >= 4 {
			out = append(out, f)
		}
	}
	return out
}
