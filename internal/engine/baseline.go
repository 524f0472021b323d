package engine

import "github.com/aas-risk-engine/internal/domain"

// satisfiedProtectiveConditions evaluates the six protective factors
// against the normalized input. Conditions are independent.
func satisfiedProtectiveConditions(in domain.Input) []domain.ProtectiveCondition {
	var conditions []domain.ProtectiveCondition

	if in.Labs.LDL <= 70 {
		conditions = append(conditions, domain.ProtectiveLDLOptimal)
	}
	if in.Performance.VO2Max > 50 {
		conditions = append(conditions, domain.ProtectiveVO2MaxExcellent)
	}
	if in.Anthropometrics.BodyFatPct <= 15 {
		conditions = append(conditions, domain.ProtectiveBodyFatOptimal)
	}
	if in.Lifestyle.MediterraneanAdherence >= 8 {
		conditions = append(conditions, domain.ProtectiveDietExcellent)
	}
	if !in.Lifestyle.Smoking {
		conditions = append(conditions, domain.ProtectiveNonSmoker)
	}
	if in.Lifestyle.OSAStatus == "treated" {
		conditions = append(conditions, domain.ProtectiveOSATreated)
	}

	return conditions
}

// AdjustBaseline produces the personalized physiologic reference: every
// satisfied protective condition scales its domains' baselines by the
// condition's factor, composing multiplicatively. The population baseline
// itself is never mutated.
func AdjustBaseline(in domain.Input, baseline map[domain.Domain]float64) map[domain.Domain]float64 {
	adjusted := make(map[domain.Domain]float64, len(baseline))
	for d, risk := range baseline {
		adjusted[d] = risk
	}

	for _, condition := range satisfiedProtectiveConditions(in) {
		for d, factor := range domain.ProtectiveFactorAdjustments[condition] {
			if _, ok := adjusted[d]; ok {
				adjusted[d] *= factor
			}
		}
	}

	return adjusted
}
