package domain

import (
	"fmt"
)

// DoseEntry places one compound on the 52-week dosing timeline. Entries are
// immutable once placed; multiple entries may overlap in time.
type DoseEntry struct {
	Compound      string  `json:"compound"`
	WeeklyMG      float64 `json:"weekly_mg"`
	StartWeek     int     `json:"start_week"`     // 1-based, defaults to 1
	DurationWeeks int     `json:"duration_weeks"` // >= 1
	IsOral        bool    `json:"is_oral"`
}

// Validate checks the entry against the timeline bounds.
func (e DoseEntry) Validate() error {
	if e.Compound == "" {
		return fmt.Errorf("dose entry: %w: compound name is required", ErrValidation)
	}
	if e.WeeklyMG < 0 {
		return fmt.Errorf("dose entry %q: %w: weekly dose must be >= 0", e.Compound, ErrValidation)
	}
	if e.StartWeek < 1 || e.StartWeek > EvaluationWeeks {
		return fmt.Errorf("dose entry %q: %w: start week must be within 1-%d", e.Compound, ErrValidation, EvaluationWeeks)
	}
	if e.DurationWeeks < 1 {
		return fmt.Errorf("dose entry %q: %w: duration must be >= 1 week", e.Compound, ErrValidation)
	}
	return nil
}

// RawInput is the wire form of the user input. Every scalar is optional; a
// nil pointer means "not provided" and resolves to a documented default
// during normalization. Contributors read their namespaced sub-sections
// from PluginData.
type RawInput struct {
	Demographics    RawDemographics           `json:"demographics"`
	Anthropometrics RawAnthropometrics        `json:"anthropometrics"`
	Vitals          RawVitals                 `json:"vitals"`
	Performance     RawPerformance            `json:"performance"`
	Labs            RawLabs                   `json:"labs"`
	Genetics        RawGenetics               `json:"genetics"`
	Regimen         []DoseEntry               `json:"aas_regimen"`
	Lifestyle       RawLifestyle              `json:"lifestyle"`
	Interventions   RawInterventions          `json:"interventions"`
	PluginData      map[string]map[string]any `json:"plugin_data,omitempty"`
}

type RawDemographics struct {
	Age *int    `json:"age,omitempty"`
	Sex *string `json:"sex,omitempty"`
}

type RawAnthropometrics struct {
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	WeightKG   *float64 `json:"weight_kg,omitempty"`
}

type RawVitals struct {
	SystolicBP *float64 `json:"systolic_bp,omitempty"`
	RestingHR  *float64 `json:"resting_hr,omitempty"`
}

type RawPerformance struct {
	VO2Max *float64 `json:"vo2max,omitempty"`
}

type RawLabs struct {
	HDL        *float64 `json:"hdl,omitempty"`
	LDL        *float64 `json:"ldl,omitempty"`
	Hematocrit *float64 `json:"hematocrit,omitempty"`
}

type RawGenetics struct {
	FamilyHistoryCAD *bool `json:"family_history_cad,omitempty"`
	APOE4Carrier     *bool `json:"apoe4_carrier,omitempty"`
}

type RawLifestyle struct {
	MediterraneanAdherence *float64 `json:"mediterranean_adherence,omitempty"` // 0-10 scale
	Smoking                *bool    `json:"smoking,omitempty"`
	OSAStatus              *string  `json:"osa_status,omitempty"` // none | untreated | treated
	AlcoholOccasionsMonth  *float64 `json:"alcohol_occasions_month,omitempty"`
	SleepHours             *float64 `json:"sleep_hours,omitempty"`
}

type RawInterventions struct {
	StatinIntensity    *string  `json:"statin_intensity,omitempty"` // none | low | moderate | high
	Ezetimibe          *bool    `json:"ezetimibe,omitempty"`
	PCSK9              *bool    `json:"pcsk9,omitempty"`
	Omega3             *bool    `json:"omega3,omitempty"`
	GLP1Agonist        *bool    `json:"glp1_agonist,omitempty"`
	Metformin          *bool    `json:"metformin,omitempty"`
	PDE5Daily          *bool    `json:"pde5_daily,omitempty"`
	Finasteride        *bool    `json:"finasteride,omitempty"`
	AIExcess           *bool    `json:"ai_excess,omitempty"`
	SERMPostCycle      *bool    `json:"serm_pct,omitempty"`
	HCG                *bool    `json:"hcg,omitempty"`
	DoseReductionHct   *bool    `json:"dose_reduction_hct,omitempty"`
	BloodDonationOnly  *bool    `json:"blood_donation_only,omitempty"`
	EliminateOrals     *bool    `json:"eliminate_orals,omitempty"`
	ReplaceHeavyMild   *bool    `json:"replace_heavy_mild,omitempty"`
	VO2MaxImprovement  *float64 `json:"vo2max_improvement,omitempty"`
	BodyFatReduction   *float64 `json:"bodyfat_reduction,omitempty"`
}

// Input is the fully-populated, strongly-typed user input record. Every
// optional field has been resolved to its documented default exactly once,
// before any rule evaluation sees it.
type Input struct {
	Demographics    Demographics              `json:"demographics"`
	Anthropometrics Anthropometrics           `json:"anthropometrics"`
	Vitals          Vitals                    `json:"vitals"`
	Performance     Performance               `json:"performance"`
	Labs            Labs                      `json:"labs"`
	Genetics        Genetics                  `json:"genetics"`
	Regimen         []DoseEntry               `json:"aas_regimen"`
	Lifestyle       Lifestyle                 `json:"lifestyle"`
	Interventions   Interventions             `json:"interventions"`
	PluginData      map[string]map[string]any `json:"plugin_data,omitempty"`
}

type Demographics struct {
	Age int    `json:"age"`
	Sex string `json:"sex"`
}

type Anthropometrics struct {
	BodyFatPct float64 `json:"body_fat_pct"`
	WeightKG   float64 `json:"weight_kg"`
}

type Vitals struct {
	SystolicBP float64 `json:"systolic_bp"`
	RestingHR  float64 `json:"resting_hr"`
}

type Performance struct {
	VO2Max float64 `json:"vo2max"`
}

type Labs struct {
	HDL        float64 `json:"hdl"`
	LDL        float64 `json:"ldl"`
	Hematocrit float64 `json:"hematocrit"`
}

type Genetics struct {
	FamilyHistoryCAD bool `json:"family_history_cad"`
	APOE4Carrier     bool `json:"apoe4_carrier"`
}

type Lifestyle struct {
	MediterraneanAdherence float64 `json:"mediterranean_adherence"`
	Smoking                bool    `json:"smoking"`
	OSAStatus              string  `json:"osa_status"`
	AlcoholOccasionsMonth  float64 `json:"alcohol_occasions_month"`
	SleepHours             float64 `json:"sleep_hours"`
}

type Interventions struct {
	StatinIntensity   string  `json:"statin_intensity"`
	Ezetimibe         bool    `json:"ezetimibe"`
	PCSK9             bool    `json:"pcsk9"`
	Omega3            bool    `json:"omega3"`
	GLP1Agonist       bool    `json:"glp1_agonist"`
	Metformin         bool    `json:"metformin"`
	PDE5Daily         bool    `json:"pde5_daily"`
	Finasteride       bool    `json:"finasteride"`
	AIExcess          bool    `json:"ai_excess"`
	SERMPostCycle     bool    `json:"serm_pct"`
	HCG               bool    `json:"hcg"`
	DoseReductionHct  bool    `json:"dose_reduction_hct"`
	BloodDonationOnly bool    `json:"blood_donation_only"`
	EliminateOrals    bool    `json:"eliminate_orals"`
	ReplaceHeavyMild  bool    `json:"replace_heavy_mild"`
	VO2MaxImprovement float64 `json:"vo2max_improvement"`
	BodyFatReduction  float64 `json:"bodyfat_reduction"`
}

// Documented defaults for optional input fields.
const (
	DefaultAge                    = 30
	DefaultSex                    = "male"
	DefaultBodyFatPct             = 20.0
	DefaultWeightKG               = 85.0
	DefaultSystolicBP             = 125.0
	DefaultRestingHR              = 65.0
	DefaultVO2Max                 = 40.0
	DefaultHDL                    = 50.0
	DefaultLDL                    = 100.0
	DefaultHematocrit             = 45.0
	DefaultMediterraneanAdherence = 5.0
	DefaultOSAStatus              = "none"
	DefaultSleepHours             = 7.0
	DefaultStatinIntensity        = "none"
)

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func floatOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func stringOr(v *string, def string) string {
	if v != nil && *v != "" {
		return *v
	}
	return def
}

func boolOr(v *bool) bool {
	return v != nil && *v
}

// Normalize resolves every optional field to its default and validates the
// regimen entries. Missing optional fields never produce an error; only a
// structurally invalid dose entry does.
func (r RawInput) Normalize() (Input, error) {
	regimen := make([]DoseEntry, 0, len(r.Regimen))
	for _, entry := range r.Regimen {
		if entry.StartWeek == 0 {
			entry.StartWeek = 1
		}
		if err := entry.Validate(); err != nil {
			return Input{}, err
		}
		regimen = append(regimen, entry)
	}

	in := Input{
		Demographics: Demographics{
			Age: intOr(r.Demographics.Age, DefaultAge),
			Sex: stringOr(r.Demographics.Sex, DefaultSex),
		},
		Anthropometrics: Anthropometrics{
			BodyFatPct: floatOr(r.Anthropometrics.BodyFatPct, DefaultBodyFatPct),
			WeightKG:   floatOr(r.Anthropometrics.WeightKG, DefaultWeightKG),
		},
		Vitals: Vitals{
			SystolicBP: floatOr(r.Vitals.SystolicBP, DefaultSystolicBP),
			RestingHR:  floatOr(r.Vitals.RestingHR, DefaultRestingHR),
		},
		Performance: Performance{
			VO2Max: floatOr(r.Performance.VO2Max, DefaultVO2Max),
		},
		Labs: Labs{
			HDL:        floatOr(r.Labs.HDL, DefaultHDL),
			LDL:        floatOr(r.Labs.LDL, DefaultLDL),
			Hematocrit: floatOr(r.Labs.Hematocrit, DefaultHematocrit),
		},
		Genetics: Genetics{
			FamilyHistoryCAD: boolOr(r.Genetics.FamilyHistoryCAD),
			APOE4Carrier:     boolOr(r.Genetics.APOE4Carrier),
		},
		Regimen: regimen,
		Lifestyle: Lifestyle{
			MediterraneanAdherence: floatOr(r.Lifestyle.MediterraneanAdherence, DefaultMediterraneanAdherence),
			Smoking:                boolOr(r.Lifestyle.Smoking),
			OSAStatus:              stringOr(r.Lifestyle.OSAStatus, DefaultOSAStatus),
			AlcoholOccasionsMonth:  floatOr(r.Lifestyle.AlcoholOccasionsMonth, 0),
			SleepHours:             floatOr(r.Lifestyle.SleepHours, DefaultSleepHours),
		},
		Interventions: Interventions{
			StatinIntensity:   stringOr(r.Interventions.StatinIntensity, DefaultStatinIntensity),
			Ezetimibe:         boolOr(r.Interventions.Ezetimibe),
			PCSK9:             boolOr(r.Interventions.PCSK9),
			Omega3:            boolOr(r.Interventions.Omega3),
			GLP1Agonist:       boolOr(r.Interventions.GLP1Agonist),
			Metformin:         boolOr(r.Interventions.Metformin),
			PDE5Daily:         boolOr(r.Interventions.PDE5Daily),
			Finasteride:       boolOr(r.Interventions.Finasteride),
			AIExcess:          boolOr(r.Interventions.AIExcess),
			SERMPostCycle:     boolOr(r.Interventions.SERMPostCycle),
			HCG:               boolOr(r.Interventions.HCG),
			DoseReductionHct:  boolOr(r.Interventions.DoseReductionHct),
			BloodDonationOnly: boolOr(r.Interventions.BloodDonationOnly),
			EliminateOrals:    boolOr(r.Interventions.EliminateOrals),
			ReplaceHeavyMild:  boolOr(r.Interventions.ReplaceHeavyMild),
			VO2MaxImprovement: floatOr(r.Interventions.VO2MaxImprovement, 0),
			BodyFatReduction:  floatOr(r.Interventions.BodyFatReduction, 0),
		},
		PluginData: r.PluginData,
	}
	return in, nil
}

// ActiveInterventionLabels extracts human-readable labels for the active
// mitigation strategies, in checklist order.
func (in Input) ActiveInterventionLabels() []string {
	var labels []string
	iv := in.Interventions

	if iv.EliminateOrals {
		labels = append(labels, "Eliminate orals")
	}
	if iv.ReplaceHeavyMild {
		labels = append(labels, "Replace heavy with mild")
	}
	if iv.VO2MaxImprovement > 0 {
		labels = append(labels, fmt.Sprintf("VO2max +%.0f", iv.VO2MaxImprovement))
	}
	if iv.BodyFatReduction > 0 {
		labels = append(labels, fmt.Sprintf("Body fat -%.0f%%", iv.BodyFatReduction))
	}
	if iv.StatinIntensity != "" && iv.StatinIntensity != DefaultStatinIntensity {
		labels = append(labels, fmt.Sprintf("%s statin", titleCase(iv.StatinIntensity)))
	}

	medications := []struct {
		active bool
		label  string
	}{
		{iv.Ezetimibe, "Ezetimibe"},
		{iv.PCSK9, "PCSK9 inhibitor"},
		{iv.Omega3, "Omega-3"},
		{iv.GLP1Agonist, "GLP-1/GIP agonist"},
		{iv.Metformin, "Metformin"},
		{iv.PDE5Daily, "PDE5 daily"},
		{iv.Finasteride, "Finasteride/Dutasteride"},
		{iv.SERMPostCycle, "SERM PCT"},
		{iv.HCG, "HCG support"},
	}
	for _, med := range medications {
		if med.active {
			labels = append(labels, med.label)
		}
	}
	return labels
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
