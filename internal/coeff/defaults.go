package coeff

import "github.com/aas-risk-engine/internal/domain"

// moderateDefaults is the compiled-in moderate coefficient table, used when
// no preset file is present. Preset files in the presets directory take
// precedence; conservative and aggressive variants are derived from this
// base when their files are absent.
var moderateDefaults = domain.CoefficientSet{
	// Enumerates the full domain set used to initialize empty multiplier
	// lists. All values neutral.
	domain.BaseConditionKey: {
		domain.DomainASCVD:             1.0,
		domain.DomainHeartFailure:      1.0,
		domain.DomainThrombosis:        1.0,
		domain.DomainIschemicStroke:    1.0,
		domain.DomainHemorrhagicStroke: 1.0,
		domain.DomainHepatic:           1.0,
		domain.DomainRenal:             1.0,
		domain.DomainNeuro:             1.0,
		domain.DomainDiabetes:          1.0,
		domain.DomainDementia:          1.0,
		domain.DomainCancerColorectal:  1.0,
		domain.DomainCancerProstate:    1.0,
		domain.DomainEndocrine:         1.0,
		domain.DomainDermatologic:      1.0,
	},

	// Dose-excess scaling base: raised to the fractional number of 100 mg
	// blocks above threshold when at least half the year is supra-physiologic.
	"per_100mg_wte_over_150mg_26wks": {
		domain.DomainASCVD:          1.12,
		domain.DomainHeartFailure:   1.15,
		domain.DomainThrombosis:     1.10,
		domain.DomainIschemicStroke: 1.08,
		domain.DomainHepatic:        1.03,
		domain.DomainRenal:          1.05,
		domain.DomainNeuro:          1.06,
		domain.DomainDiabetes:       1.03,
		domain.DomainEndocrine:      1.15,
		domain.DomainDermatologic:   1.08,
	},

	"stack_300mg_20wks": {
		domain.DomainASCVD:        1.25,
		domain.DomainHeartFailure: 1.35,
		domain.DomainThrombosis:   1.20,
		domain.DomainRenal:        1.15,
		domain.DomainNeuro:        1.15,
		domain.DomainEndocrine:    1.30,
		domain.DomainDermatologic: 1.20,
	},

	"oral_17aa_10wks_moderate": {
		domain.DomainHepatic:    2.0,
		domain.DomainASCVD:      1.15,
		domain.DomainThrombosis: 1.10,
	},
	"oral_17aa_10wks_high": {
		domain.DomainHepatic:    3.5,
		domain.DomainASCVD:      1.30,
		domain.DomainThrombosis: 1.20,
		domain.DomainRenal:      1.20,
	},

	"hdl_nadir_lt25": {
		domain.DomainASCVD:          1.30,
		domain.DomainIschemicStroke: 1.20,
		domain.DomainHeartFailure:   1.10,
	},
	"hematocrit_gt54": {
		domain.DomainThrombosis:        1.60,
		domain.DomainIschemicStroke:    1.30,
		domain.DomainASCVD:             1.15,
		domain.DomainHemorrhagicStroke: 1.20,
	},
	"recovery_ratio_lt_0_5": {
		domain.DomainEndocrine:    1.50,
		domain.DomainASCVD:        1.10,
		domain.DomainHeartFailure: 1.10,
		domain.DomainNeuro:        1.15,
	},

	// Fitness and lifestyle improvements
	"vo2_plus5": {
		domain.DomainASCVD:        0.85,
		domain.DomainHeartFailure: 0.80,
		domain.DomainDiabetes:     0.85,
		domain.DomainDementia:     0.92,
	},
	"additional_vo2_plus5": {
		domain.DomainASCVD:        0.92,
		domain.DomainHeartFailure: 0.88,
		domain.DomainDiabetes:     0.92,
	},
	"bodyfat_minus5pts": {
		domain.DomainDiabetes:     0.80,
		domain.DomainASCVD:        0.90,
		domain.DomainHeartFailure: 0.90,
	},
	"med_diet_high": {
		domain.DomainASCVD:            0.88,
		domain.DomainCancerColorectal: 0.85,
		domain.DomainDementia:         0.90,
	},
	"osa_treated": {
		domain.DomainASCVD:        0.90,
		domain.DomainHeartFailure: 0.85,
		domain.DomainDiabetes:     0.92,
		domain.DomainNeuro:        0.95,
	},
	"replace_heavy_with_mild": {
		domain.DomainASCVD:        0.85,
		domain.DomainHeartFailure: 0.80,
		domain.DomainHepatic:      0.70,
		domain.DomainNeuro:        0.85,
		domain.DomainDermatologic: 0.85,
	},

	// Medications and support compounds
	"statin_low_intensity": {
		domain.DomainASCVD:          0.85,
		domain.DomainIschemicStroke: 0.90,
	},
	"statin_moderate": {
		domain.DomainASCVD:          0.75,
		domain.DomainIschemicStroke: 0.85,
	},
	"statin_high": {
		domain.DomainASCVD:          0.65,
		domain.DomainIschemicStroke: 0.80,
	},
	"ezetimibe_addon": {
		domain.DomainASCVD:          0.94,
		domain.DomainIschemicStroke: 0.96,
	},
	"pcsk9_inhibitor": {
		domain.DomainASCVD:          0.80,
		domain.DomainIschemicStroke: 0.85,
	},
	"omega3_high_purity": {
		domain.DomainASCVD:      0.92,
		domain.DomainThrombosis: 0.95,
	},
	"glp1_gip": {
		domain.DomainDiabetes:     0.60,
		domain.DomainASCVD:        0.85,
		domain.DomainHeartFailure: 0.90,
	},
	"metformin": {
		domain.DomainDiabetes:         0.70,
		domain.DomainCancerColorectal: 0.92,
	},
	"pde5_daily": {
		domain.DomainASCVD:        0.92,
		domain.DomainHeartFailure: 0.95,
	},
	"finasteride_dutasteride": {
		domain.DomainDermatologic:   0.60,
		domain.DomainCancerProstate: 0.85,
		domain.DomainNeuro:          1.05,
	},
	"ai_excess_use": {
		domain.DomainASCVD:        1.20,
		domain.DomainThrombosis:   1.10,
		domain.DomainNeuro:        1.10,
		domain.DomainDermatologic: 1.05,
	},
	"serm_post_cycle": {
		domain.DomainEndocrine: 0.75,
		domain.DomainNeuro:     1.05,
	},
	"hcg_support": {
		domain.DomainEndocrine: 0.80,
	},

	// Hematocrit management, mutually exclusive
	"dose_reduction_for_hct": {
		domain.DomainThrombosis:     0.75,
		domain.DomainIschemicStroke: 0.85,
		domain.DomainASCVD:          0.90,
	},
	"blood_donation_only_without_dose_reduction": {
		domain.DomainThrombosis:     0.90,
		domain.DomainIschemicStroke: 0.95,
	},
}
