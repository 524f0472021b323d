package engine

import (
	"math"

	"github.com/aas-risk-engine/internal/domain"
)

// Rule activation thresholds for the multiplier checklist.
const (
	doseExcessMinSupraWeeks = 26
	stackDoseMG             = 300.0
	stackMinSupraWeeks      = 20
	highDoseOralWeekCutoff  = 5.0
	hdlNadirCutoff          = 25.0
	hematocritCutoff        = 54.0
	recoveryRatioCutoff     = 0.5
)

// EstimateHDLNadir projects the on-cycle HDL low from baseline HDL and the
// exposure profile. The drop scales with supra-physiologic TE (capped at a
// 50% fraction at 300 mg over threshold), amplified by oral use, with a
// flat 10 mg/dL penalty for prolonged high-dose orals. Floored at 15 mg/dL.
func EstimateHDLNadir(in domain.Input, metrics domain.ExposureMetrics) float64 {
	baselineHDL := in.Labs.HDL

	excessTE := math.Max(0, metrics.AvgWeeklyTE-domain.PhysiologicThresholdMG)
	dropFraction := math.Min(0.5, excessTE/300)

	oralFactor := 1.0
	if metrics.Oral17AAWeeks > 0 {
		oralFactor = 1.2
		if metrics.Oral17AAHighDoseWeeks > 4 {
			oralFactor = 1.5
		}
	}

	drop := baselineHDL * dropFraction * oralFactor
	if metrics.Oral17AAHighDoseWeeks > 8 {
		drop += 10
	}

	return math.Max(15, baselineHDL-drop)
}

// Collect evaluates the fixed condition-rule checklist against the input
// and appends each matched rule's preset multipliers to the per-domain
// lists. The checklist order is not configurable; list order is the display
// order.
func Collect(in domain.Input, metrics domain.ExposureMetrics, coeffs domain.CoefficientSet) domain.MultiplierSet {
	mults := make(domain.MultiplierSet)
	for _, d := range coeffs.Domains() {
		mults[d] = []float64{}
	}

	apply := func(key string, condition bool) {
		if !condition {
			return
		}
		entry, ok := coeffs[key]
		if !ok {
			return
		}
		for d, value := range entry {
			if _, tracked := mults[d]; tracked {
				mults[d] = append(mults[d], value)
			}
		}
	}

	// Dose-excess scaling: the one continuously-scaled rule. The per-100mg
	// multiplier is raised to the fractional number of 100 mg blocks over
	// threshold, not integer-truncated.
	if metrics.AvgWeeklyTE > domain.PhysiologicThresholdMG &&
		metrics.WeeksSupraPhysiologic >= doseExcessMinSupraWeeks {
		excessTE := metrics.AvgWeeklyTE - domain.PhysiologicThresholdMG
		blocks := excessTE / 100
		if entry, ok := coeffs["per_100mg_wte_over_150mg_26wks"]; ok {
			for d, base := range entry {
				if _, tracked := mults[d]; tracked {
					mults[d] = append(mults[d], math.Pow(base, blocks))
				}
			}
		}
	}

	apply("stack_300mg_20wks",
		metrics.AvgWeeklyTE >= stackDoseMG && metrics.WeeksSupraPhysiologic >= stackMinSupraWeeks)

	// Oral burden tiers.
	if metrics.Oral17AAWeeks > 0 {
		if metrics.Oral17AAHighDoseWeeks > highDoseOralWeekCutoff {
			apply("oral_17aa_10wks_high", true)
		} else {
			apply("oral_17aa_10wks_moderate", true)
		}
	}

	// Lab-derived conditions.
	hdlNadir := EstimateHDLNadir(in, metrics)
	apply("hdl_nadir_lt25", hdlNadir < hdlNadirCutoff)
	apply("hematocrit_gt54", in.Labs.Hematocrit > hematocritCutoff)
	apply("recovery_ratio_lt_0_5", metrics.RecoveryRatio < recoveryRatioCutoff)

	// Fitness improvements stack in two tiers.
	if in.Interventions.VO2MaxImprovement >= 5 {
		apply("vo2_plus5", true)
		apply("additional_vo2_plus5", in.Interventions.VO2MaxImprovement >= 10)
	}
	apply("bodyfat_minus5pts", in.Interventions.BodyFatReduction >= 5)

	// Lifestyle quality flags.
	apply("med_diet_high", in.Lifestyle.MediterraneanAdherence >= 8)
	apply("osa_treated", in.Lifestyle.OSAStatus == "treated")

	// Eliminating orals has no multiplier of its own; its effect is a
	// recomputation without the oral entries. Replace-heavy-with-mild
	// applies its preset entry; the regimen substitution itself is a
	// flagged no-op pending a product decision.
	apply("replace_heavy_with_mild", in.Interventions.ReplaceHeavyMild)

	// Medication and support interventions.
	switch in.Interventions.StatinIntensity {
	case "low":
		apply("statin_low_intensity", true)
	case "moderate":
		apply("statin_moderate", true)
	case "high":
		apply("statin_high", true)
	}
	apply("ezetimibe_addon", in.Interventions.Ezetimibe)
	apply("pcsk9_inhibitor", in.Interventions.PCSK9)
	apply("omega3_high_purity", in.Interventions.Omega3)
	apply("glp1_gip", in.Interventions.GLP1Agonist)
	apply("metformin", in.Interventions.Metformin)
	apply("pde5_daily", in.Interventions.PDE5Daily)
	apply("finasteride_dutasteride", in.Interventions.Finasteride)

	apply("ai_excess_use", in.Interventions.AIExcess)

	apply("serm_post_cycle", in.Interventions.SERMPostCycle)
	apply("hcg_support", in.Interventions.HCG)

	// Hematocrit management is mutually exclusive: dose reduction takes
	// precedence over blood-donation-only when both flags are set.
	if in.Labs.Hematocrit > hematocritCutoff {
		if in.Interventions.DoseReductionHct {
			apply("dose_reduction_for_hct", true)
		} else if in.Interventions.BloodDonationOnly {
			apply("blood_donation_only_without_dose_reduction", true)
		}
	}

	return mults
}
