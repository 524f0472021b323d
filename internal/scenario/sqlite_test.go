package scenario

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/domain"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := NewSQLiteArchive(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	return archive
}

func archivedScenario(id, name string) *domain.Scenario {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Scenario{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Preset:    domain.PresetModerate,
		Category:  domain.CategoryModerate,
		Risks: domain.RiskReport{
			domain.DomainASCVD: {
				Domain:          domain.DomainASCVD,
				AbsoluteRisk:    0.45,
				AbsoluteRiskPct: 45,
				Badge:           domain.BadgeAverage,
			},
		},
		Interventions: []string{"Metformin"},
	}
}

func TestSQLiteArchive_SaveAndLoadAll(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Save(ctx, archivedScenario("a", "first")))
	require.NoError(t, archive.Save(ctx, archivedScenario("b", "second")))

	scenarios, err := archive.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	byID := make(map[string]*domain.Scenario, len(scenarios))
	for _, sc := range scenarios {
		byID[sc.ID] = sc
	}
	assert.Equal(t, "first", byID["a"].Name)
	assert.Equal(t, []string{"Metformin"}, byID["a"].Interventions)
	assert.InDelta(t, 0.45, byID["a"].Risks[domain.DomainASCVD].AbsoluteRisk, 1e-9)
}

func TestSQLiteArchive_SaveReplaces(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Save(ctx, archivedScenario("a", "original")))

	renamed := archivedScenario("a", "renamed")
	require.NoError(t, archive.Save(ctx, renamed))

	scenarios, err := archive.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "renamed", scenarios[0].Name)
}

func TestSQLiteArchive_Delete(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Save(ctx, archivedScenario("a", "doomed")))
	require.NoError(t, archive.Delete(ctx, "a"))

	scenarios, err := archive.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, scenarios)

	// Deleting a missing ID is not an error.
	assert.NoError(t, archive.Delete(ctx, "missing"))
}
