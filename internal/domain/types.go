package domain

import (
	"time"
)

// ExposureMetrics summarizes a regimen over the 52-week evaluation window.
// Recomputed in full on every scenario create/update.
type ExposureMetrics struct {
	// AvgWeeklyTE is the average testosterone-equivalent over weeks with any
	// injectable dose; 0 when no week has one.
	AvgWeeklyTE float64 `json:"avg_weekly_te"`
	// MaxWeeklyTE is the highest single-week testosterone-equivalent.
	MaxWeeklyTE float64 `json:"max_weekly_te"`
	// WeeksSupraPhysiologic counts weeks above the physiologic threshold.
	WeeksSupraPhysiologic int `json:"weeks_supra_physiologic"`
	// RecoveryRatio is weeks at-or-below threshold over weeks above;
	// defaults to 1.0 when no week is above.
	RecoveryRatio float64 `json:"recovery_ratio"`
	// Oral17AAWeeks accrues the 17-alpha-alkylated oral week fraction,
	// weighted by 1/(oral entry count) so overlapping orals in the same
	// week are not double counted.
	Oral17AAWeeks float64 `json:"oral_17aa_weeks"`
	// Oral17AAHighDoseWeeks is the sub-fraction of oral weeks above the
	// high-dose threshold.
	Oral17AAHighDoseWeeks float64 `json:"oral_17aa_high_dose_weeks"`
	HasHeavyCompounds     bool    `json:"has_heavy_compounds"`
	HasDHTCompounds       bool    `json:"has_dht_compounds"`
	// LongestSupraStreak is the longest run of consecutive
	// supra-physiologic weeks.
	LongestSupraStreak int `json:"longest_supra_streak"`
}

// DomainRisk is the composed risk record for one health domain.
type DomainRisk struct {
	Domain            Domain    `json:"domain"`
	AbsoluteRisk      float64   `json:"absolute_risk"` // clamped to [0, 0.99]
	AbsoluteRiskPct   float64   `json:"absolute_risk_pct"`
	RRvsPopulation    float64   `json:"rr_vs_population"`
	RRvsPhysiologic   float64   `json:"rr_vs_physio"`
	ARRvsBaseline     float64   `json:"arr_vs_baseline"` // may be negative
	EventFreeYears    float64   `json:"event_free_years"`
	ActiveMultipliers []float64 `json:"active_multipliers"` // insertion order
	Badge             RiskBadge `json:"badge"`
}

// RiskReport is the full per-domain output of one computation.
type RiskReport map[Domain]DomainRisk

// MultiplierSet maps a domain to the ordered multipliers collected for it.
// Lists are append-only during one computation; display order is insertion
// order.
type MultiplierSet map[Domain][]float64

// Extend appends contributions onto the set, extending lists rather than
// overwriting and retaining domains absent from the internal set.
func (m MultiplierSet) Extend(other MultiplierSet) {
	for d, values := range other {
		m[d] = append(m[d], values...)
	}
}

// Scenario is a named, fully-computed snapshot of one user input. Risk
// records are always fully populated relative to the stored input; updates
// recompute everything.
type Scenario struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Preset        PresetName      `json:"preset"`
	Input         Input           `json:"user_data"`
	Exposure      ExposureMetrics `json:"exposure_metrics"`
	Risks         RiskReport      `json:"risks"`
	Category      RiskCategory    `json:"category"`
	Interventions []string        `json:"interventions"`
}

// ScenarioSummary is the list-view projection of a scenario.
type ScenarioSummary struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	CreatedAt         time.Time    `json:"created_at"`
	Category          RiskCategory `json:"category"`
	Preset            PresetName   `json:"preset"`
	ASCVDRiskPct      float64      `json:"ascvd_risk_pct"`
	InterventionCount int          `json:"intervention_count"`
}

// Trajectory maps every integer age from the current age to the horizon age
// onto a projected absolute risk.
type Trajectory map[int]float64

// DomainImpact quantifies the effect of an intervention on one domain.
type DomainImpact struct {
	AbsoluteRiskReduction float64 `json:"absolute_risk_reduction"`
	RelativeRiskReduction float64 `json:"relative_risk_reduction"`
	RiskRatio             float64 `json:"risk_ratio"`
	EFYGained             float64 `json:"efy_gained"`
}

// EfficiencyReport relates total event-free years gained to an intervention
// cost tier.
type EfficiencyReport struct {
	TotalEFYGained      float64            `json:"total_efy_gained"`
	CostPerEFY          float64            `json:"cost_per_efy"` // +Inf when nothing gained
	EfficiencyScore     float64            `json:"efficiency_score"`
	DomainContributions map[Domain]float64 `json:"domain_contributions"`
}

// CompositeCVBenefit aggregates the cardiovascular domains into one figure,
// down-weighting ischemic stroke which is partially counted inside ASCVD.
type CompositeCVBenefit struct {
	CompositeRisk    float64 `json:"composite_cv_risk"` // capped at 0.7
	CompositeRiskPct float64 `json:"composite_cv_risk_pct"`
	CompositeEFY     float64 `json:"composite_cv_efy"`
}

// ScenarioComparison lays several scenarios side by side over the union of
// their domains.
type ScenarioComparison struct {
	Scenarios []ComparisonEntry `json:"scenarios"`
	Domains   []Domain          `json:"domains"`
}

// ComparisonEntry is one scenario's row set within a comparison.
type ComparisonEntry struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Category      RiskCategory              `json:"category"`
	Preset        PresetName                `json:"preset"`
	Risks         map[Domain]ComparisonRisk `json:"risks"`
	Interventions []string                  `json:"interventions"`
}

// ComparisonRisk is the reduced per-domain view used in comparisons.
type ComparisonRisk struct {
	AbsoluteRiskPct float64 `json:"absolute_risk_pct"`
	RRvsPopulation  float64 `json:"rr_vs_population"`
	EventFreeYears  float64 `json:"event_free_years"`
}
