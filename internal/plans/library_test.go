package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-preplan/pkg/models"
)

func TestLibraryLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "limit.yaml"), []byte(limitPlanYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a plan"), 0o644))

	l := NewLibrary()
	require.NoError(t, l.LoadDir(dir))

	plan, found := l.Get("dc_transfer_limit")
	require.True(t, found)
	assert.Len(t, plan.Steps, 3)
	assert.Len(t, l.List(), 1)
}

func TestLibraryLoadDirFailsOnMalformedPlan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(limitPlanYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("title: missing everything else"), 0o644))

	l := NewLibrary()
	err := l.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLibrarySelect(t *testing.T) {
	l := NewLibrary()
	l.Add(&models.Plan{
		PlanID:      "dc_transfer_limit",
		Title:       "DC transfer limit",
		Description: "compute the net transfer limit of a DC line",
		Tags:        []string{"transfer", "limit"},
		Steps:       []models.Step{{ID: "s1"}},
	})
	l.Add(&models.Plan{
		PlanID:      "outage_review",
		Title:       "Outage review",
		Description: "review planned outages for a converter station",
		Tags:        []string{"outage"},
		Steps:       []models.Step{{ID: "s1"}},
	})

	plan, err := l.Select("what is the transfer limit of LineA")
	require.NoError(t, err)
	assert.Equal(t, "dc_transfer_limit", plan.PlanID)

	plan, err = l.Select("upcoming outage at the converter station")
	require.NoError(t, err)
	assert.Equal(t, "outage_review", plan.PlanID)

	_, err = l.Select("zzzz")
	assert.Error(t, err)
}
