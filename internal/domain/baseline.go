package domain

// ModelVersion identifies the coefficient model revision carried in exports.
const ModelVersion = "1.0.0"

// EvaluationWeeks is the fixed dosing timeline window. Dose segments
// extending past it are truncated, never wrapped.
const EvaluationWeeks = 52

// PhysiologicThresholdMG is the weekly testosterone-equivalent dose above
// which a week counts as supra-physiologic.
const PhysiologicThresholdMG = 150.0

// HighDoseOralMG is the weekly oral dose above which an oral week counts
// toward the high-dose fraction.
const HighDoseOralMG = 50.0

// DefaultHorizonAge is the projection horizon for event-free-years and
// trajectories.
const DefaultHorizonAge = 80

// BaselineRisks holds approximate lifetime risks for the reference male
// population. These are population priors, never mutated; personalization
// always derives a separate table.
var BaselineRisks = map[Domain]float64{
	DomainASCVD:             0.40,
	DomainHeartFailure:      0.22,
	DomainThrombosis:        0.07,
	DomainIschemicStroke:    0.22,
	DomainHemorrhagicStroke: 0.012,
	DomainHepatic:           0.03,
	DomainRenal:             0.03,
	DomainNeuro:             0.12,
	DomainDiabetes:          0.33,
	DomainDementia:          0.06,
	DomainCancerColorectal:  0.042,
	DomainCancerProstate:    0.13,
	DomainEndocrine:         0.10,
	DomainDermatologic:      0.25,
}

// AverageEventAge is the typical age of first event per domain, used to
// offset event-free-years and anchor trajectory interpolation.
var AverageEventAge = map[Domain]int{
	DomainASCVD:             65,
	DomainHeartFailure:      70,
	DomainThrombosis:        60,
	DomainIschemicStroke:    70,
	DomainHemorrhagicStroke: 65,
	DomainHepatic:           55,
	DomainRenal:             60,
	DomainNeuro:             45,
	DomainDiabetes:          55,
	DomainDementia:          75,
	DomainCancerColorectal:  65,
	DomainCancerProstate:    65,
	DomainEndocrine:         35,
	DomainDermatologic:      30,
}

// DefaultEventAge is used for domains absent from AverageEventAge, e.g.
// contributor-introduced ones.
const DefaultEventAge = 65

// EventAge returns the average first-event age for a domain.
func EventAge(d Domain) int {
	if age, ok := AverageEventAge[d]; ok {
		return age
	}
	return DefaultEventAge
}

// ProtectiveCondition names one of the baseline-adjusting protective factors.
type ProtectiveCondition string

const (
	ProtectiveLDLOptimal      ProtectiveCondition = "ldl_optimal"      // LDL <= 70
	ProtectiveVO2MaxExcellent ProtectiveCondition = "vo2max_excellent" // VO2max > 50
	ProtectiveBodyFatOptimal  ProtectiveCondition = "bodyfat_optimal"  // body fat <= 15%
	ProtectiveDietExcellent   ProtectiveCondition = "diet_excellent"   // Mediterranean >= 8
	ProtectiveNonSmoker       ProtectiveCondition = "non_smoker"
	ProtectiveOSATreated      ProtectiveCondition = "osa_treated"
)

// ProtectiveFactorAdjustments scales per-domain baselines when the named
// condition is satisfied. All factors are < 1.0 (risk reducing); conditions
// are independent and compose multiplicatively.
var ProtectiveFactorAdjustments = map[ProtectiveCondition]map[Domain]float64{
	ProtectiveLDLOptimal:      {DomainASCVD: 0.75, DomainIschemicStroke: 0.80},
	ProtectiveVO2MaxExcellent: {DomainASCVD: 0.80, DomainHeartFailure: 0.75, DomainDiabetes: 0.70},
	ProtectiveBodyFatOptimal:  {DomainASCVD: 0.85, DomainDiabetes: 0.65, DomainHeartFailure: 0.85},
	ProtectiveDietExcellent:   {DomainASCVD: 0.85, DomainCancerColorectal: 0.80, DomainDementia: 0.85},
	ProtectiveNonSmoker:       {DomainASCVD: 0.90, DomainCancerColorectal: 0.90, DomainDementia: 0.95},
	ProtectiveOSATreated:      {DomainASCVD: 0.90, DomainHeartFailure: 0.85, DomainDiabetes: 0.90},
}

// RiskBadge labels a relative-risk level for report badges.
type RiskBadge string

const (
	BadgeReduced  RiskBadge = "reduced"
	BadgeAverage  RiskBadge = "average"
	BadgeElevated RiskBadge = "elevated"
	BadgeHigh     RiskBadge = "high"
)

// BadgeForRelativeRisk maps a relative risk vs population onto a badge.
func BadgeForRelativeRisk(rr float64) RiskBadge {
	switch {
	case rr < 0.75:
		return BadgeReduced
	case rr < 1.25:
		return BadgeAverage
	case rr < 1.75:
		return BadgeElevated
	default:
		return BadgeHigh
	}
}

// QualityWeights approximates quality-of-life retained after a first event
// in each domain. Used only by the QALY estimate.
var QualityWeights = map[Domain]float64{
	DomainASCVD:             0.8,
	DomainHeartFailure:      0.7,
	DomainThrombosis:        0.85,
	DomainIschemicStroke:    0.6,
	DomainHemorrhagicStroke: 0.5,
	DomainHepatic:           0.85,
	DomainRenal:             0.8,
	DomainNeuro:             0.75,
	DomainDiabetes:          0.85,
	DomainDementia:          0.4,
	DomainCancerColorectal:  0.7,
	DomainCancerProstate:    0.9,
	DomainEndocrine:         0.9,
	DomainDermatologic:      0.95,
}
