// Package domain contains the core business entities for multi-domain
// health-risk estimation from self-reported physiology, compound regimens,
// lab values, lifestyle and mitigating interventions.
//
// The model is a heuristic scoring engine with hand-authored coefficients,
// not a validated clinical instrument. Every estimate it produces is a
// plausibility-ranked projection, never a diagnosis.
package domain

// Domain identifies one of the tracked health outcome categories.
type Domain string

const (
	DomainASCVD             Domain = "ascvd"
	DomainHeartFailure      Domain = "hf"
	DomainThrombosis        Domain = "thrombosis"
	DomainIschemicStroke    Domain = "ischemic_stroke"
	DomainHemorrhagicStroke Domain = "hemorrhagic_stroke"
	DomainHepatic           Domain = "hepatic"
	DomainRenal             Domain = "renal"
	DomainNeuro             Domain = "neuro"
	DomainDiabetes          Domain = "diabetes"
	DomainDementia          Domain = "dementia"
	DomainCancerColorectal  Domain = "cancer_colorectal"
	DomainCancerProstate    Domain = "cancer_prostate"
	DomainEndocrine         Domain = "endocrine"
	DomainDermatologic      Domain = "dermatologic"
)

// AllDomains lists every tracked domain in display order.
var AllDomains = []Domain{
	DomainASCVD,
	DomainHeartFailure,
	DomainThrombosis,
	DomainIschemicStroke,
	DomainHemorrhagicStroke,
	DomainHepatic,
	DomainRenal,
	DomainNeuro,
	DomainDiabetes,
	DomainDementia,
	DomainCancerColorectal,
	DomainCancerProstate,
	DomainEndocrine,
	DomainDermatologic,
}

// IsValid reports whether d is one of the tracked domains. Contributors may
// introduce domains outside this set; those are retained but never validated
// against it.
func (d Domain) IsValid() bool {
	_, ok := domainDisplayNames[d]
	return ok
}

// String returns the wire representation of the domain key.
func (d Domain) String() string {
	return string(d)
}

var domainDisplayNames = map[Domain]string{
	DomainASCVD:             "ASCVD",
	DomainHeartFailure:      "Heart Failure",
	DomainThrombosis:        "Thrombosis",
	DomainIschemicStroke:    "Ischemic Stroke",
	DomainHemorrhagicStroke: "Hemorrhagic Stroke",
	DomainHepatic:           "Hepatic Injury",
	DomainRenal:             "Renal Injury",
	DomainNeuro:             "Neuro/Psychiatric",
	DomainDiabetes:          "Type 2 Diabetes",
	DomainDementia:          "Dementia",
	DomainCancerColorectal:  "Colorectal Cancer",
	DomainCancerProstate:    "Prostate Cancer",
	DomainEndocrine:         "Endocrine Suppression",
	DomainDermatologic:      "Dermatologic",
}

// DisplayName returns a human-readable label for the domain. Unknown
// (contributor-introduced) domains fall back to the raw key.
func (d Domain) DisplayName() string {
	if name, ok := domainDisplayNames[d]; ok {
		return name
	}
	return string(d)
}

// DomainGroups organizes domains for report layout.
var DomainGroups = map[string][]Domain{
	"Cardiovascular":   {DomainASCVD, DomainHeartFailure, DomainThrombosis, DomainIschemicStroke, DomainHemorrhagicStroke},
	"Metabolic":        {DomainDiabetes},
	"Organ Systems":    {DomainHepatic, DomainRenal},
	"Neuropsychiatric": {DomainNeuro, DomainDementia},
	"Cancer":           {DomainCancerColorectal, DomainCancerProstate},
	"Endocrine":        {DomainEndocrine},
	"Dermatologic":     {DomainDermatologic},
}

// RiskCategory buckets a scenario by overall exposure severity.
type RiskCategory string

const (
	CategoryPhysiologic RiskCategory = "physiologic"
	CategoryModerate    RiskCategory = "moderate"
	CategoryHighRisk    RiskCategory = "high_risk"
)

// IsValid reports whether the category is a recognized value.
func (c RiskCategory) IsValid() bool {
	switch c {
	case CategoryPhysiologic, CategoryModerate, CategoryHighRisk:
		return true
	default:
		return false
	}
}

// TrajectoryMethod selects the interpolation used for age-indexed risk
// trajectories.
type TrajectoryMethod string

const (
	TrajectoryLinear   TrajectoryMethod = "linear"
	TrajectoryLogistic TrajectoryMethod = "logistic"
)

// IsValid reports whether the method is supported. Callers must reject
// unsupported methods rather than substitute a default.
func (m TrajectoryMethod) IsValid() bool {
	return m == TrajectoryLinear || m == TrajectoryLogistic
}

// PresetName identifies a coefficient preset.
type PresetName string

const (
	PresetConservative PresetName = "conservative"
	PresetModerate     PresetName = "moderate"
	PresetAggressive   PresetName = "aggressive"
)

// IsValid reports whether the preset name is one of the shipped presets.
func (p PresetName) IsValid() bool {
	switch p {
	case PresetConservative, PresetModerate, PresetAggressive:
		return true
	default:
		return false
	}
}

// CoefficientSet maps a condition key to its per-domain multipliers.
// A multiplier of 1.0 is neutral, >1.0 harmful, <1.0 protective.
type CoefficientSet map[string]map[Domain]float64

// BaseConditionKey enumerates the full domain set used to initialize empty
// multiplier lists; every preset file must carry it.
const BaseConditionKey = "physiologic_t_base"

// Domains returns the domain set enumerated by the preset's base entry.
func (c CoefficientSet) Domains() []Domain {
	base, ok := c[BaseConditionKey]
	if !ok {
		return nil
	}
	domains := make([]Domain, 0, len(base))
	for _, d := range AllDomains {
		if _, present := base[d]; present {
			domains = append(domains, d)
		}
	}
	// Preserve any extra domains a custom preset enumerates.
	for d := range base {
		if !d.IsValid() {
			domains = append(domains, d)
		}
	}
	return domains
}
