package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/domain"
)

func TestUncertaintyBand(t *testing.T) {
	lower, upper := UncertaintyBand(0.4, 0)
	assert.InDelta(t, 0.34, lower, 1e-9)
	assert.InDelta(t, 0.46, upper, 1e-9)

	lower, upper = UncertaintyBand(0.2, 0.5)
	assert.InDelta(t, 0.1, lower, 1e-9)
	assert.InDelta(t, 0.3, upper, 1e-9)
}

func TestCumulativeRisk(t *testing.T) {
	assert.Zero(t, CumulativeRisk(0, 10))
	assert.Equal(t, 1.0, CumulativeRisk(1.5, 10))
	assert.InDelta(t, 1-math.Pow(0.99, 10), CumulativeRisk(0.01, 10), 1e-9)
	// Long horizons are capped.
	assert.InDelta(t, 0.99, CumulativeRisk(0.5, 100), 1e-9)
}

func TestProjectedCumulativeRisk(t *testing.T) {
	assert.Zero(t, ProjectedCumulativeRisk(0, 30, 10))

	tenYear := ProjectedCumulativeRisk(0.4, 30, 10)
	fortyYear := ProjectedCumulativeRisk(0.4, 30, 40)
	assert.Greater(t, tenYear, 0.0)
	assert.Greater(t, fortyYear, tenYear)
	// Projection over part of the horizon stays below the lifetime figure.
	assert.Less(t, tenYear, 0.4)
}

func TestYearsToEventProbability(t *testing.T) {
	assert.True(t, math.IsInf(YearsToEventProbability(0, 30, domain.DomainASCVD, 0.5), 1))

	// Young users get the pre-event-age stretch factor.
	young := YearsToEventProbability(0.4, 30, domain.DomainASCVD, 0.5)
	old := YearsToEventProbability(0.4, 70, domain.DomainASCVD, 0.5)
	assert.Greater(t, young, 0.0)
	assert.Greater(t, old, 0.0)
	assert.Greater(t, young/old, 1.0)
}

func TestQualityAdjustedLifeYears(t *testing.T) {
	report := domain.RiskReport{
		domain.DomainDementia: {Domain: domain.DomainDementia, AbsoluteRisk: 0.5},
	}

	qalys := QualityAdjustedLifeYears(report, 30)
	// 50 years remaining, quality loss 0.5*(1-0.4)=0.3, average quality 0.85.
	assert.InDelta(t, 50*0.85, qalys, 1e-9)

	// Loss is capped against comorbidity double counting.
	for _, d := range domain.AllDomains {
		report[d] = domain.DomainRisk{Domain: d, AbsoluteRisk: 0.99}
	}
	capped := QualityAdjustedLifeYears(report, 30)
	assert.InDelta(t, 50*(1-maxQualityLoss/2), capped, 1e-9)

	assert.Zero(t, QualityAdjustedLifeYears(report, 85))
}

func testReports() (base, intervention domain.RiskReport) {
	base = domain.RiskReport{
		domain.DomainASCVD: {Domain: domain.DomainASCVD, AbsoluteRisk: 0.40, EventFreeYears: 0},
		domain.DomainHeartFailure: {Domain: domain.DomainHeartFailure, AbsoluteRisk: 0.20, EventFreeYears: 0.5},
	}
	intervention = domain.RiskReport{
		domain.DomainASCVD: {Domain: domain.DomainASCVD, AbsoluteRisk: 0.30, EventFreeYears: 1.5},
		domain.DomainHeartFailure: {Domain: domain.DomainHeartFailure, AbsoluteRisk: 0.20, EventFreeYears: 0.5},
	}
	return base, intervention
}

func TestInterventionImpact(t *testing.T) {
	base, intervention := testReports()

	impact := InterventionImpact(base, intervention)
	require.Contains(t, impact, domain.DomainASCVD)

	ascvd := impact[domain.DomainASCVD]
	assert.InDelta(t, 0.10, ascvd.AbsoluteRiskReduction, 1e-9)
	assert.InDelta(t, 0.25, ascvd.RelativeRiskReduction, 1e-9)
	assert.InDelta(t, 0.75, ascvd.RiskRatio, 1e-9)
	assert.InDelta(t, 1.5, ascvd.EFYGained, 1e-9)

	unchanged := impact[domain.DomainHeartFailure]
	assert.Zero(t, unchanged.AbsoluteRiskReduction)
	assert.InDelta(t, 1.0, unchanged.RiskRatio, 1e-9)
}

func TestInterventionEfficiency(t *testing.T) {
	base, intervention := testReports()

	report := InterventionEfficiency(base, intervention, CostMedium)
	assert.InDelta(t, 1.5, report.TotalEFYGained, 1e-9)
	assert.InDelta(t, 5.0/1.5, report.CostPerEFY, 1e-9)
	assert.InDelta(t, 1.5/5.0, report.EfficiencyScore, 1e-9)
	assert.InDelta(t, 1.5, report.DomainContributions[domain.DomainASCVD], 1e-9)

	// No gain yields an infinite cost per event-free year.
	flat := InterventionEfficiency(base, base, CostLow)
	assert.True(t, math.IsInf(flat.CostPerEFY, 1))
	assert.Zero(t, flat.TotalEFYGained)
}

func TestEventsAvoided(t *testing.T) {
	avoided := EventsAvoided(map[domain.Domain]float64{
		domain.DomainASCVD:   0.1,
		domain.DomainHepatic: 0.0004,
	}, 1000)

	assert.Equal(t, 100, avoided[domain.DomainASCVD])
	assert.Equal(t, 0, avoided[domain.DomainHepatic])
}

func TestCompositeCardiovascularBenefit(t *testing.T) {
	report := domain.RiskReport{
		domain.DomainASCVD:          {AbsoluteRisk: 0.40, EventFreeYears: 1.0},
		domain.DomainHeartFailure:   {AbsoluteRisk: 0.20, EventFreeYears: 0.5},
		domain.DomainThrombosis:     {AbsoluteRisk: 0.05, EventFreeYears: 0.2},
		domain.DomainIschemicStroke: {AbsoluteRisk: 0.20, EventFreeYears: 1.0},
		domain.DomainHepatic:        {AbsoluteRisk: 0.90, EventFreeYears: 9.0}, // not cardiovascular
	}

	composite := CompositeCardiovascularBenefit(report)
	assert.InDelta(t, 0.40+0.20+0.05+0.20*0.3, composite.CompositeRisk, 1e-9)
	assert.InDelta(t, composite.CompositeRisk*100, composite.CompositeRiskPct, 1e-9)
	assert.InDelta(t, 1.0+0.5+0.2+1.0*0.3, composite.CompositeEFY, 1e-9)

	// Extreme profiles are capped.
	for d := range compositeCVWeights {
		report[d] = domain.DomainRisk{AbsoluteRisk: 0.99}
	}
	assert.InDelta(t, compositeCVRiskCap, CompositeCardiovascularBenefit(report).CompositeRisk, 1e-9)
}
