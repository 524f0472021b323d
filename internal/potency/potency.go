// Package potency provides the static compound lookup used to normalize
// heterogeneous dosing into weekly testosterone-equivalent (TE) and to
// classify compounds for the risk rules.
package potency

import "strings"

// DefaultPotency is assigned to unrecognized compound names. Unknown
// compounds are never an error; they receive neutral classification.
const DefaultPotency = 1.0

// Potency factors relative to testosterone (testosterone = 1.0).
var compoundPotency = map[string]float64{
	// Injectable testosterone esters
	"testosterone":             1.0,
	"testosterone_enanthate":   1.0,
	"testosterone_cypionate":   1.0,
	"testosterone_propionate":  1.0,
	"testosterone_undecanoate": 1.0,
	"sustanon":                 1.0,

	// High potency injectables
	"trenbolone":           2.0,
	"trenbolone_acetate":   2.0,
	"trenbolone_enanthate": 2.0,

	// Moderate potency injectables
	"nandrolone":                  1.2,
	"nandrolone_decanoate":        1.2,
	"nandrolone_phenylpropionate": 1.2,
	"boldenone":                   1.1,
	"boldenone_undecylenate":      1.1,
	"masteron":                    1.1,
	"drostanolone_propionate":     1.1,
	"drostanolone_enanthate":      1.1,

	// Mild injectables
	"primobolan":            0.8,
	"methenolone_enanthate": 0.8,
	"methenolone_acetate":   0.8,

	// Orals keep a potency factor but their dose is tracked on a separate
	// pathway, not folded into the TE sum.
	"oxandrolone":         0.9,
	"anavar":              0.9,
	"winstrol":            1.0,
	"stanozolol":          1.0,
	"anadrol":             1.5,
	"oxymetholone":        1.5,
	"dianabol":            1.3,
	"methandrostenolone":  1.3,
	"turinabol":           1.0,
	"halotestin":          2.5,
	"fluoxymesterone":     2.5,
	"superdrol":           2.0,
	"methyldrostanolone":  2.0,
}

// Oral 17-alpha alkylated compounds (hepatotoxic pathway).
var oral17AACompounds = set(
	"oxandrolone", "anavar", "winstrol", "stanozolol", "anadrol",
	"oxymetholone", "dianabol", "methandrostenolone", "turinabol",
	"halotestin", "fluoxymesterone", "superdrol", "methyldrostanolone",
)

// DHT-derived compounds (dermatologic risk).
var dhtDerivedCompounds = set(
	"masteron", "drostanolone_propionate", "drostanolone_enanthate",
	"primobolan", "methenolone_enanthate", "methenolone_acetate",
	"winstrol", "stanozolol", "anavar", "oxandrolone",
	"halotestin", "fluoxymesterone",
)

// Heavy compounds (replacement strategies).
var heavyCompounds = set(
	"trenbolone", "trenbolone_acetate", "trenbolone_enanthate",
	"anadrol", "oxymetholone", "halotestin", "fluoxymesterone",
	"superdrol", "methyldrostanolone",
)

// Mild compounds (replacement strategies).
var mildCompounds = set(
	"primobolan", "methenolone_enanthate", "methenolone_acetate",
	"oxandrolone", "anavar", "boldenone", "boldenone_undecylenate",
)

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Normalize canonicalizes a free-text compound name: lowercased, spaces and
// hyphens collapsed to underscores.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "-", "_")
	return n
}

// Factor returns the potency factor relative to testosterone, defaulting to
// 1.0 for unrecognized names.
func Factor(name string) float64 {
	if f, ok := compoundPotency[Normalize(name)]; ok {
		return f
	}
	return DefaultPotency
}

// WeeklyTE converts a weekly dose in mg into testosterone-equivalent mg.
func WeeklyTE(name string, weeklyMG float64) float64 {
	return weeklyMG * Factor(name)
}

// IsOral17AA reports whether the compound is an oral 17-alpha alkylated.
func IsOral17AA(name string) bool {
	_, ok := oral17AACompounds[Normalize(name)]
	return ok
}

// IsDHTDerived reports whether the compound is DHT-derived.
func IsDHTDerived(name string) bool {
	_, ok := dhtDerivedCompounds[Normalize(name)]
	return ok
}

// IsHeavy reports whether the compound is classified heavy.
func IsHeavy(name string) bool {
	_, ok := heavyCompounds[Normalize(name)]
	return ok
}

// IsMild reports whether the compound is classified mild.
func IsMild(name string) bool {
	_, ok := mildCompounds[Normalize(name)]
	return ok
}
