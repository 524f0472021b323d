package engine

import (
	"math"

	"github.com/aas-risk-engine/internal/domain"
)

// DefaultRelativeUncertainty is the symmetric band applied to point
// estimates. Hand-authored coefficients carry at least this much slop.
const DefaultRelativeUncertainty = 0.15

// UncertaintyBand returns the lower and upper bounds of the relative
// uncertainty band around a point estimate.
func UncertaintyBand(value, relativeUncertainty float64) (lower, upper float64) {
	if relativeUncertainty <= 0 {
		relativeUncertainty = DefaultRelativeUncertainty
	}
	return value * (1 - relativeUncertainty), value * (1 + relativeUncertainty)
}

// InterventionImpact quantifies per-domain deltas between a base report and
// one computed with an intervention applied.
func InterventionImpact(base, intervention domain.RiskReport) map[domain.Domain]domain.DomainImpact {
	impact := make(map[domain.Domain]domain.DomainImpact, len(base))
	for d, baseRisk := range base {
		after, ok := intervention[d]
		if !ok {
			continue
		}

		reduction := baseRisk.AbsoluteRisk - after.AbsoluteRisk
		relativeReduction := 0.0
		riskRatio := 1.0
		if baseRisk.AbsoluteRisk > 0 {
			relativeReduction = reduction / baseRisk.AbsoluteRisk
			riskRatio = after.AbsoluteRisk / baseRisk.AbsoluteRisk
		}

		impact[d] = domain.DomainImpact{
			AbsoluteRiskReduction: reduction,
			RelativeRiskReduction: relativeReduction,
			RiskRatio:             riskRatio,
			EFYGained:             after.EventFreeYears - baseRisk.EventFreeYears,
		}
	}
	return impact
}

// CumulativeRisk converts an annual risk rate into the cumulative
// probability over a number of years, capped at 0.99.
func CumulativeRisk(annualRisk float64, years int) float64 {
	if annualRisk <= 0 {
		return 0
	}
	if annualRisk >= 1 {
		return 1
	}
	cumulative := 1 - math.Pow(1-annualRisk, float64(years))
	return math.Min(cumulative, 0.99)
}

// ProjectedCumulativeRisk annualizes a lifetime risk over the remaining
// horizon and accumulates it over the given number of years.
func ProjectedCumulativeRisk(lifetimeRisk float64, currentAge, years int) float64 {
	remainingYears := math.Max(1, float64(domain.DefaultHorizonAge-currentAge))
	annualRisk := 1 - math.Pow(1-lifetimeRisk, 1/remainingYears)
	return CumulativeRisk(annualRisk, years)
}

// YearsToEventProbability estimates the years until a domain's cumulative
// event probability reaches the target, annualizing the lifetime risk over
// the remaining horizon. Returns +Inf when the annualized risk is zero.
func YearsToEventProbability(lifetimeRisk float64, currentAge int, d domain.Domain, targetProbability float64) float64 {
	remainingYears := math.Max(1, float64(domain.DefaultHorizonAge-currentAge))
	annualRisk := 1 - math.Pow(1-lifetimeRisk, 1/remainingYears)
	if annualRisk <= 0 {
		return math.Inf(1)
	}

	years := math.Log(1-targetProbability) / math.Log(1-annualRisk)

	// Events are less likely before the typical event age.
	if eventAge := domain.EventAge(d); currentAge < eventAge {
		years *= 1 + float64(eventAge-currentAge)/40
	}
	return years
}

// maxQualityLoss caps the summed per-domain quality losses, since the
// domains overlap and a straight sum double counts comorbid states.
const maxQualityLoss = 0.6

// QualityAdjustedLifeYears estimates QALYs remaining to the horizon from the
// per-domain absolute risks, assuming a gradual quality decline.
func QualityAdjustedLifeYears(report domain.RiskReport, currentAge int) float64 {
	yearsRemaining := math.Max(0, float64(domain.DefaultHorizonAge-currentAge))

	totalQualityLoss := 0.0
	for d, risk := range report {
		weight, ok := domain.QualityWeights[d]
		if !ok {
			continue
		}
		totalQualityLoss += risk.AbsoluteRisk * (1 - weight)
	}
	totalQualityLoss = math.Min(totalQualityLoss, maxQualityLoss)

	averageQuality := 1 - totalQualityLoss/2
	return yearsRemaining * averageQuality
}

// CostCategory tiers an intervention's cost for efficiency ranking.
type CostCategory string

const (
	CostLow    CostCategory = "low"    // lifestyle changes
	CostMedium CostCategory = "medium" // generic medications
	CostHigh   CostCategory = "high"   // PCSK9-class therapies
)

var costWeights = map[CostCategory]float64{
	CostLow:    1.0,
	CostMedium: 5.0,
	CostHigh:   20.0,
}

// InterventionEfficiency relates the total event-free years gained between
// two reports to the intervention's cost tier. CostPerEFY is +Inf when
// nothing is gained.
func InterventionEfficiency(base, intervention domain.RiskReport, cost CostCategory) domain.EfficiencyReport {
	weight, ok := costWeights[cost]
	if !ok {
		weight = costWeights[CostLow]
	}

	totalGained := 0.0
	contributions := make(map[domain.Domain]float64, len(base))
	for d, baseRisk := range base {
		after, present := intervention[d]
		if !present {
			continue
		}
		gained := after.EventFreeYears - baseRisk.EventFreeYears
		contributions[d] = gained
		totalGained += gained
	}

	costPerEFY := math.Inf(1)
	if totalGained > 0 {
		costPerEFY = weight / totalGained
	}

	return domain.EfficiencyReport{
		TotalEFYGained:      totalGained,
		CostPerEFY:          costPerEFY,
		EfficiencyScore:     totalGained / weight,
		DomainContributions: contributions,
	}
}

// EventsAvoided projects the absolute number of events avoided per domain in
// a theoretical population of the given size.
func EventsAvoided(riskReduction map[domain.Domain]float64, populationSize int) map[domain.Domain]int {
	avoided := make(map[domain.Domain]int, len(riskReduction))
	for d, arr := range riskReduction {
		avoided[d] = int(math.Round(arr * float64(populationSize)))
	}
	return avoided
}

// compositeCVWeights defines the cardiovascular composite, down-weighting
// ischemic stroke which is partially counted inside ASCVD.
var compositeCVWeights = map[domain.Domain]float64{
	domain.DomainASCVD:          1.0,
	domain.DomainHeartFailure:   1.0,
	domain.DomainThrombosis:     1.0,
	domain.DomainIschemicStroke: 0.3,
}

const compositeCVRiskCap = 0.7

// CompositeCardiovascularBenefit aggregates the CV domains into one figure.
func CompositeCardiovascularBenefit(report domain.RiskReport) domain.CompositeCVBenefit {
	var compositeRisk, compositeEFY float64
	for d, weight := range compositeCVWeights {
		risk, ok := report[d]
		if !ok {
			continue
		}
		compositeRisk += risk.AbsoluteRisk * weight
		compositeEFY += risk.EventFreeYears * weight
	}
	compositeRisk = math.Min(compositeRisk, compositeCVRiskCap)

	return domain.CompositeCVBenefit{
		CompositeRisk:    compositeRisk,
		CompositeRiskPct: compositeRisk * 100,
		CompositeEFY:     compositeEFY,
	}
}

// PhysiologicReferenceInput is the built-in physiologic TRT comparison
// scenario: 140 mg/week testosterone year-round with unremarkable labs.
func PhysiologicReferenceInput() domain.Input {
	raw := domain.RawInput{
		Demographics: domain.RawDemographics{Age: intPtr(45)},
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 140, StartWeek: 1, DurationWeeks: 52},
		},
		Labs: domain.RawLabs{
			HDL:        floatPtr(45),
			LDL:        floatPtr(90),
			Hematocrit: floatPtr(48),
		},
		Lifestyle: domain.RawLifestyle{
			MediterraneanAdherence: floatPtr(6),
		},
		Performance:     domain.RawPerformance{VO2Max: floatPtr(42)},
		Anthropometrics: domain.RawAnthropometrics{BodyFatPct: floatPtr(18)},
	}
	in, _ := raw.Normalize()
	return in
}

// HighRiskReferenceInput is the built-in high-risk comparison scenario: a
// heavy three-compound stack with adverse labs.
func HighRiskReferenceInput() domain.Input {
	untreated := "untreated"
	raw := domain.RawInput{
		Demographics: domain.RawDemographics{Age: intPtr(30)},
		Regimen: []domain.DoseEntry{
			{Compound: "testosterone", WeeklyMG: 500, StartWeek: 1, DurationWeeks: 20},
			{Compound: "trenbolone", WeeklyMG: 300, StartWeek: 1, DurationWeeks: 16},
			{Compound: "anadrol", WeeklyMG: 350, StartWeek: 1, DurationWeeks: 8, IsOral: true},
		},
		Labs: domain.RawLabs{
			HDL:        floatPtr(35),
			LDL:        floatPtr(120),
			Hematocrit: floatPtr(55),
		},
		Lifestyle: domain.RawLifestyle{
			MediterraneanAdherence: floatPtr(4),
			OSAStatus:              &untreated,
		},
		Performance:     domain.RawPerformance{VO2Max: floatPtr(38)},
		Anthropometrics: domain.RawAnthropometrics{BodyFatPct: floatPtr(22)},
	}
	in, _ := raw.Normalize()
	return in
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
