package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/coeff"
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/exposure"
)

func newTestEngine(t *testing.T, registry ContributorRegistry) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := coeff.NewStore("", 0, logger)
	require.NoError(t, err)
	return NewEngine(store, registry, logger)
}

func TestCompute_CleanTRTStaysNearPopulation(t *testing.T) {
	e := newTestEngine(t, nil)
	in := normalize(t, domain.RawInput{
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 250, StartWeek: 1, DurationWeeks: 12},
		},
	})

	report, err := e.Compute(in, domain.PresetModerate)
	require.NoError(t, err)
	require.Len(t, report, len(domain.AllDomains))

	ascvd := report[domain.DomainASCVD]
	assert.Empty(t, ascvd.ActiveMultipliers)
	assert.GreaterOrEqual(t, ascvd.RRvsPopulation, 0.8)
	assert.LessOrEqual(t, ascvd.RRvsPopulation, 2.0)
	assert.InDelta(t, 1.0, ascvd.RRvsPhysiologic, 1e-9)
	assert.Equal(t, domain.BadgeAverage, ascvd.Badge)
}

func TestCompute_HighDoseOralRaisesHepatic(t *testing.T) {
	e := newTestEngine(t, nil)
	hdl := 60.0
	in := normalize(t, domain.RawInput{
		Labs: domain.RawLabs{HDL: &hdl},
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 250, StartWeek: 1, DurationWeeks: 12},
			{Compound: "anadrol", WeeklyMG: 350, StartWeek: 1, DurationWeeks: 6, IsOral: true},
		},
	})

	report, err := e.Compute(in, domain.PresetModerate)
	require.NoError(t, err)

	hepatic := report[domain.DomainHepatic]
	assert.Greater(t, hepatic.RRvsPopulation, 1.1)
	assert.Contains(t, hepatic.ActiveMultipliers, 3.5)
}

func TestCompute_PresetsOrderRisk(t *testing.T) {
	e := newTestEngine(t, nil)
	in := normalize(t, domain.RawInput{
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 500, StartWeek: 1, DurationWeeks: 30},
		},
	})

	conservative, err := e.Compute(in, domain.PresetConservative)
	require.NoError(t, err)
	moderate, err := e.Compute(in, domain.PresetModerate)
	require.NoError(t, err)
	aggressive, err := e.Compute(in, domain.PresetAggressive)
	require.NoError(t, err)

	ascvd := domain.DomainASCVD
	assert.LessOrEqual(t, conservative[ascvd].AbsoluteRisk, moderate[ascvd].AbsoluteRisk)
	assert.LessOrEqual(t, moderate[ascvd].AbsoluteRisk, aggressive[ascvd].AbsoluteRisk)
}

func TestCompute_AbsoluteRiskClamped(t *testing.T) {
	e := newTestEngine(t, nil)
	hct := 56.0
	smoking := true
	in := normalize(t, domain.RawInput{
		Labs:      domain.RawLabs{Hematocrit: &hct},
		Lifestyle: domain.RawLifestyle{Smoking: &smoking},
		Regimen: []domain.DoseEntry{
			{Compound: "trenbolone", WeeklyMG: 600, StartWeek: 1, DurationWeeks: 52},
			{Compound: "anadrol", WeeklyMG: 350, StartWeek: 1, DurationWeeks: 20, IsOral: true},
		},
	})

	report, err := e.Compute(in, domain.PresetAggressive)
	require.NoError(t, err)

	for d, risk := range report {
		assert.GreaterOrEqual(t, risk.AbsoluteRisk, 0.0, "%s", d)
		assert.LessOrEqual(t, risk.AbsoluteRisk, 0.99, "%s", d)
		assert.InDelta(t, risk.AbsoluteRisk*100, risk.AbsoluteRiskPct, 1e-9, "%s", d)
	}
}

func TestCompute_UnknownPreset(t *testing.T) {
	e := newTestEngine(t, nil)
	in := normalize(t, domain.RawInput{})

	_, err := e.Compute(in, "experimental")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

type registryFunc func(in domain.Input, mults domain.MultiplierSet)

func (f registryFunc) Apply(in domain.Input, mults domain.MultiplierSet) { f(in, mults) }

func TestCompute_ContributorMultipliersExtend(t *testing.T) {
	registry := registryFunc(func(_ domain.Input, mults domain.MultiplierSet) {
		mults.Extend(domain.MultiplierSet{
			domain.DomainEndocrine: {1.4},
			"fertility":            {1.2}, // no baseline prior
		})
	})
	e := newTestEngine(t, registry)
	in := normalize(t, domain.RawInput{})

	report, err := e.Compute(in, domain.PresetModerate)
	require.NoError(t, err)

	endocrine := report[domain.DomainEndocrine]
	assert.Contains(t, endocrine.ActiveMultipliers, 1.4)
	assert.InDelta(t, domain.BaselineRisks[domain.DomainEndocrine]*1.4, endocrine.AbsoluteRisk, 1e-9)

	_, present := report[domain.Domain("fertility")]
	assert.False(t, present)
}

func TestEventFreeYears(t *testing.T) {
	// ARR 0.1 at age 30 for a domain with typical event age 65: 15 years of
	// post-event-age horizon exposure.
	efy := EventFreeYears(domain.DomainASCVD, 0.1, 30)
	assert.InDelta(t, 1.5, efy, 1e-9)

	// Harmful exposure never reports negative event-free years.
	assert.Zero(t, EventFreeYears(domain.DomainASCVD, -0.2, 30))

	// Past the horizon there is nothing to gain.
	assert.Zero(t, EventFreeYears(domain.DomainASCVD, 0.1, 85))
}

func TestReferenceScenarios(t *testing.T) {
	physio := PhysiologicReferenceInput()
	metrics := exposure.Aggregate(physio.Regimen)
	assert.Equal(t, domain.CategoryPhysiologic, exposure.Categorize(metrics, physio))

	high := HighRiskReferenceInput()
	metrics = exposure.Aggregate(high.Regimen)
	assert.Equal(t, domain.CategoryHighRisk, exposure.Categorize(metrics, high))
}
