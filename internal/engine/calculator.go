// Package engine composes baseline risks, exposure metrics and coefficient
// multipliers into per-domain risk reports and derived metrics.
package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/exposure"
)

// ContributorRegistry applies registered add-on contributors to a multiplier
// set. A nil registry is valid and contributes nothing.
type ContributorRegistry interface {
	Apply(in domain.Input, mults domain.MultiplierSet)
}

// Absolute risks are clamped to this range after composition.
const (
	MinAbsoluteRisk = 0.0
	MaxAbsoluteRisk = 0.99
)

// Engine is the risk computation pipeline. It is stateless across calls and
// safe for concurrent use.
type Engine struct {
	coeffs   domain.CoefficientSource
	registry ContributorRegistry
	logger   *logrus.Logger
}

// NewEngine creates an engine over the given coefficient source. registry may
// be nil when no contributors are configured.
func NewEngine(coeffs domain.CoefficientSource, registry ContributorRegistry, logger *logrus.Logger) *Engine {
	return &Engine{coeffs: coeffs, registry: registry, logger: logger}
}

func clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Compute runs the full pipeline for one input under the named preset:
// exposure aggregation, protective baseline adjustment, multiplier
// collection, contributor application and per-domain composition.
func (e *Engine) Compute(in domain.Input, preset domain.PresetName) (domain.RiskReport, error) {
	coeffs, err := e.coeffs.Load(preset)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}

	metrics := exposure.Aggregate(in.Regimen)
	reference := AdjustBaseline(in, domain.BaselineRisks)

	mults := Collect(in, metrics, coeffs)
	if e.registry != nil {
		e.registry.Apply(in, mults)
	}

	report := make(domain.RiskReport, len(reference))
	for d, baseRisk := range reference {
		relativeRisk := 1.0
		for _, m := range mults[d] {
			relativeRisk *= m
		}

		absolute := clamp(baseRisk*relativeRisk, MinAbsoluteRisk, MaxAbsoluteRisk)

		rrVsPopulation := 1.0
		if population := domain.BaselineRisks[d]; population > 0 {
			rrVsPopulation = absolute / population
		}
		rrVsPhysio := 1.0
		if baseRisk > 0 {
			rrVsPhysio = absolute / baseRisk
		}

		arr := domain.BaselineRisks[d] - absolute

		report[d] = domain.DomainRisk{
			Domain:            d,
			AbsoluteRisk:      absolute,
			AbsoluteRiskPct:   absolute * 100,
			RRvsPopulation:    rrVsPopulation,
			RRvsPhysiologic:   rrVsPhysio,
			ARRvsBaseline:     arr,
			EventFreeYears:    EventFreeYears(d, arr, in.Demographics.Age),
			ActiveMultipliers: mults[d],
			Badge:             domain.BadgeForRelativeRisk(rrVsPopulation),
		}
	}

	// Contributor-introduced domains without a population prior cannot be
	// composed into an absolute risk and are dropped from the report.
	for d := range mults {
		if _, ok := reference[d]; !ok {
			e.logger.WithFields(logrus.Fields{
				"domain":      d.String(),
				"multipliers": len(mults[d]),
			}).Warn("Dropping contributor domain without a baseline prior")
		}
	}

	return report, nil
}

// EventFreeYears converts an absolute risk reduction into projected
// event-free years gained over the horizon, offset by the domain's typical
// first-event age. Never negative.
func EventFreeYears(d domain.Domain, arr float64, currentAge int) float64 {
	horizonRemaining := math.Max(0, float64(domain.DefaultHorizonAge-currentAge))
	eventAgeOffset := math.Max(0, float64(domain.EventAge(d)-currentAge))

	efy := arr * (horizonRemaining - eventAgeOffset)
	return math.Max(0, efy)
}
