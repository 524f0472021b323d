package plugin

import (
	"strings"

	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/potency"
)

const fertilityName = "fertility"

// suppressionFactors weight each compound class by how strongly it shuts
// down the HPG axis, relative to testosterone. Matched by substring against
// the normalized compound name; first match in list order wins, so a blend
// name resolves the same way on every run.
var suppressionFactors = []struct {
	class  string
	factor float64
}{
	{"testosterone", 1.0},
	{"nandrolone", 1.3},
	{"trenbolone", 2.0},
	{"anadrol", 1.8},
	{"dianabol", 1.5},
	{"winstrol", 1.2},
	{"anavar", 0.8},
	{"primobolan", 0.9},
}

// FertilityContributor models fertility-focused endocrine suppression:
// cumulative regimen suppression with an age penalty, recovery support
// interventions and fertility-relevant lifestyle factors.
type FertilityContributor struct{}

// NewFertilityContributor constructs the contributor.
func NewFertilityContributor() *FertilityContributor {
	return &FertilityContributor{}
}

func (c *FertilityContributor) Name() string    { return fertilityName }
func (c *FertilityContributor) Version() string { return "1.0.0" }

func (c *FertilityContributor) Description() string {
	return "Detailed fertility and endocrine suppression risk modeling with recovery tracking"
}

// Multipliers derives additional endocrine multipliers from the regimen, the
// shared intervention flags and the contributor's own input section.
func (c *FertilityContributor) Multipliers(in domain.Input) domain.MultiplierSet {
	section := in.PluginData[fertilityName]
	endocrine := []float64{}

	if sectionBool(section, "baseline_fertility_issues") {
		endocrine = append(endocrine, 1.3)
	}

	if score := suppressionScore(in.Regimen); score > 0 {
		// 15% per severity point, harder to recover from with age: 2% per
		// year over 25.
		agePenalty := 1.0
		if in.Demographics.Age > 25 {
			agePenalty += float64(in.Demographics.Age-25) * 0.02
		}
		endocrine = append(endocrine, (1.0+score*0.15)*agePenalty)
	}

	if in.Interventions.HCG {
		endocrine = append(endocrine, 0.7)
	}
	if in.Interventions.SERMPostCycle {
		endocrine = append(endocrine, 0.75)
	}
	if sectionBool(section, "fertility_protocol") {
		endocrine = append(endocrine, 0.6)
	}

	if months := sectionFloat(section, "time_off_between_cycles"); months >= 3 {
		benefit := 0.95 - months*0.02
		if benefit < 0.85 {
			benefit = 0.85
		}
		endocrine = append(endocrine, benefit)
	}

	if in.Lifestyle.Smoking {
		endocrine = append(endocrine, 1.25)
	}
	if in.Lifestyle.AlcoholOccasionsMonth > 8 {
		endocrine = append(endocrine, 1.15)
	}
	switch {
	case in.Lifestyle.SleepHours < 6:
		endocrine = append(endocrine, 1.2)
	case in.Lifestyle.SleepHours >= 8:
		endocrine = append(endocrine, 0.95)
	}

	if sectionBool(section, "stress_management") {
		endocrine = append(endocrine, 0.9)
	}

	return domain.MultiplierSet{domain.DomainEndocrine: endocrine}
}

// AdditionalInputs declares the fertility-specific fields read from the
// contributor's input section.
func (c *FertilityContributor) AdditionalInputs() []domain.InputField {
	return []domain.InputField{
		{
			Name:  "baseline_fertility_issues",
			Label: "Pre-existing fertility concerns",
			Type:  "bool",
			Help:  "Any fertility issues before AAS use",
		},
		{
			Name:  "fertility_protocol",
			Label: "Following comprehensive fertility protocol",
			Type:  "bool",
			Help:  "Includes HCG, SERMs, monitoring, lifestyle optimization",
		},
		{
			Name:    "time_off_between_cycles",
			Label:   "Average time off between cycles (months)",
			Type:    "number",
			Min:     0,
			Max:     60,
			Default: 3,
		},
		{
			Name:  "stress_management",
			Label: "Active stress management practices",
			Type:  "bool",
			Help:  "Meditation, therapy, stress reduction techniques",
		},
	}
}

// suppressionScore accumulates per-compound suppression: 200 mg of
// testosterone for 12 weeks is one severity point, scaled by the compound's
// suppression factor.
func suppressionScore(regimen []domain.DoseEntry) float64 {
	score := 0.0
	for _, entry := range regimen {
		name := potency.Normalize(entry.Compound)
		factor := 1.0
		for _, sf := range suppressionFactors {
			if strings.Contains(name, sf.class) {
				factor = sf.factor
				break
			}
		}
		score += (entry.WeeklyMG / 200) * (float64(entry.DurationWeeks) / 12) * factor
	}
	return score
}

func sectionBool(section map[string]any, key string) bool {
	v, ok := section[key].(bool)
	return ok && v
}

func sectionFloat(section map[string]any, key string) float64 {
	switch v := section[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
