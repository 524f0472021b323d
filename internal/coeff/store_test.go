package coeff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/domain"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := NewStore(dir, 0, logger)
	require.NoError(t, err)
	return store
}

func TestLoad_BuiltinModerate(t *testing.T) {
	store := newTestStore(t, "")

	set, err := store.Load(domain.PresetModerate)
	require.NoError(t, err)

	base, ok := set[domain.BaseConditionKey]
	require.True(t, ok, "base entry must enumerate the domain set")
	assert.Len(t, base, len(domain.AllDomains))

	// Spot-check a harmful and a protective entry.
	assert.InDelta(t, 3.5, set["oral_17aa_10wks_high"][domain.DomainHepatic], 1e-9)
	assert.InDelta(t, 0.65, set["statin_high"][domain.DomainASCVD], 1e-9)
}

func TestLoad_DerivedVariantsBracketModerate(t *testing.T) {
	store := newTestStore(t, "")

	moderate, err := store.Load(domain.PresetModerate)
	require.NoError(t, err)
	conservative, err := store.Load(domain.PresetConservative)
	require.NoError(t, err)
	aggressive, err := store.Load(domain.PresetAggressive)
	require.NoError(t, err)

	for key, mults := range moderate {
		for d, m := range mults {
			c := conservative[key][d]
			a := aggressive[key][d]
			switch {
			case m > 1:
				assert.LessOrEqual(t, c, m, "%s/%s conservative", key, d)
				assert.GreaterOrEqual(t, a, m, "%s/%s aggressive", key, d)
			case m < 1:
				assert.GreaterOrEqual(t, c, m, "%s/%s conservative", key, d)
				assert.LessOrEqual(t, a, m, "%s/%s aggressive", key, d)
			default:
				assert.InDelta(t, 1.0, c, 1e-9)
				assert.InDelta(t, 1.0, a, 1e-9)
			}
		}
	}
}

func TestLoad_UnknownPreset(t *testing.T) {
	store := newTestStore(t, "")

	_, err := store.Load("experimental")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestLoad_Idempotent(t *testing.T) {
	store := newTestStore(t, "")

	first, err := store.Load(domain.PresetModerate)
	require.NoError(t, err)
	second, err := store.Load(domain.PresetModerate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// fullBaseYAML renders a base entry covering every tracked domain.
func fullBaseYAML() string {
	var b strings.Builder
	b.WriteString(domain.BaseConditionKey + ":\n")
	for _, d := range domain.AllDomains {
		fmt.Fprintf(&b, "  %s: 1.0\n", d)
	}
	return b.String()
}

func TestLoad_FileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := fullBaseYAML() + "oral_17aa_10wks_high:\n  hepatic: 5.0\n"
	path := filepath.Join(dir, "coefficients_moderate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := newTestStore(t, dir)
	set, err := store.Load(domain.PresetModerate)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, set["oral_17aa_10wks_high"][domain.DomainHepatic], 1e-9)
	assert.Len(t, set[domain.BaseConditionKey], len(domain.AllDomains))

	// Variants without their own file derive from the file-backed base.
	aggressive, err := store.Load(domain.PresetAggressive)
	require.NoError(t, err)
	assert.InDelta(t, 1+(5.0-1)*AggressiveFactor, aggressive["oral_17aa_10wks_high"][domain.DomainHepatic], 1e-9)
}

func TestLoad_RejectsPresetWithoutBaseEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coefficients_moderate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statin_high:\n  ascvd: 0.6\n"), 0644))

	store := newTestStore(t, dir)
	_, err := store.Load(domain.PresetModerate)
	assert.Error(t, err)
}

func TestLoad_RejectsBaseMissingTrackedDomain(t *testing.T) {
	dir := t.TempDir()
	// A base entry with a misspelled domain key must fail loudly rather than
	// silently dropping that domain's multipliers.
	content := strings.Replace(fullBaseYAML(), "  hf: 1.0\n", "  heart_failure: 1.0\n", 1)
	path := filepath.Join(dir, "coefficients_moderate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := newTestStore(t, dir)
	_, err := store.Load(domain.PresetModerate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"hf"`)
}

func TestLoad_ShippedPresetFiles(t *testing.T) {
	store := newTestStore(t, "../../presets")

	expectedHepaticHigh := map[domain.PresetName]float64{
		domain.PresetModerate:     3.5,
		domain.PresetConservative: 1 + (3.5-1)*ConservativeFactor,
		domain.PresetAggressive:   1 + (3.5-1)*AggressiveFactor,
	}

	for _, preset := range []domain.PresetName{
		domain.PresetConservative,
		domain.PresetModerate,
		domain.PresetAggressive,
	} {
		set, err := store.Load(preset)
		require.NoError(t, err, "preset %s", preset)

		base := set[domain.BaseConditionKey]
		for _, d := range domain.AllDomains {
			assert.Contains(t, base, d, "preset %s base entry", preset)
		}

		assert.InDelta(t, expectedHepaticHigh[preset],
			set["oral_17aa_10wks_high"][domain.DomainHepatic], 1e-4,
			"preset %s hepatic oral tier", preset)
		assert.Contains(t, set["stack_300mg_20wks"], domain.DomainHeartFailure,
			"preset %s heart-failure stack entry", preset)
	}
}

func TestTransform(t *testing.T) {
	base := domain.CoefficientSet{
		"harmful":    {domain.DomainASCVD: 2.0},
		"protective": {domain.DomainASCVD: 0.6},
		"neutral":    {domain.DomainASCVD: 1.0},
	}

	conservative := Transform(base, ConservativeFactor)
	assert.InDelta(t, 1.5, conservative["harmful"][domain.DomainASCVD], 1e-9)
	assert.InDelta(t, 0.8, conservative["protective"][domain.DomainASCVD], 1e-9)
	assert.InDelta(t, 1.0, conservative["neutral"][domain.DomainASCVD], 1e-9)

	aggressive := Transform(base, AggressiveFactor)
	assert.InDelta(t, 2.3, aggressive["harmful"][domain.DomainASCVD], 1e-9)
	assert.InDelta(t, 0.48, aggressive["protective"][domain.DomainASCVD], 1e-9)
}
