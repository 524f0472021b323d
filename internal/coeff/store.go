// Package coeff loads named coefficient presets and derives conservative
// and aggressive variants from the moderate base.
package coeff

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/aas-risk-engine/internal/domain"
)

// Transform factors: distance from 1.0 is compressed for the conservative
// variant and amplified for the aggressive one.
const (
	ConservativeFactor = 0.5
	AggressiveFactor   = 1.3
)

const defaultCacheSize = 8

// Store resolves preset names to coefficient tables. Loaded presets are
// read-only and shared; repeated loads are idempotent and served from a
// small LRU cache.
type Store struct {
	dir    string
	cache  *lru.Cache[domain.PresetName, domain.CoefficientSet]
	logger *logrus.Logger
}

// NewStore creates a preset store reading files from dir. An empty dir
// restricts the store to the compiled-in tables.
func NewStore(dir string, cacheSize int, logger *logrus.Logger) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[domain.PresetName, domain.CoefficientSet](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset cache: %w", err)
	}
	return &Store{dir: dir, cache: cache, logger: logger}, nil
}

// Load resolves a preset by name. Resolution order: cached table, preset
// file, derived variant of the moderate base, compiled-in default.
func (s *Store) Load(name domain.PresetName) (domain.CoefficientSet, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}

	if cached, ok := s.cache.Get(name); ok {
		return cached, nil
	}

	set, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := validate(set); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}

	s.cache.Add(name, set)
	return set, nil
}

func (s *Store) resolve(name domain.PresetName) (domain.CoefficientSet, error) {
	if set, ok, err := s.loadFile(name); err != nil {
		return nil, err
	} else if ok {
		return set, nil
	}

	// No file for this preset: derive from the moderate base.
	base := moderateDefaults
	if set, ok, err := s.loadFile(domain.PresetModerate); err != nil {
		return nil, err
	} else if ok {
		base = set
	}

	switch name {
	case domain.PresetModerate:
		return base, nil
	case domain.PresetConservative:
		return Transform(base, ConservativeFactor), nil
	case domain.PresetAggressive:
		return Transform(base, AggressiveFactor), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
}

// loadFile reads presets/coefficients_<name>.yaml. A missing file is not an
// error; the second return reports presence.
func (s *Store) loadFile(name domain.PresetName) (domain.CoefficientSet, bool, error) {
	if s.dir == "" {
		return nil, false, nil
	}
	path := filepath.Join(s.dir, fmt.Sprintf("coefficients_%s.yaml", name))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}

	var raw map[string]map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}

	set := make(domain.CoefficientSet, len(raw))
	for key, mults := range raw {
		entry := make(map[domain.Domain]float64, len(mults))
		for d, v := range mults {
			entry[domain.Domain(d)] = v
		}
		set[key] = entry
	}

	s.logger.WithFields(logrus.Fields{
		"preset":     string(name),
		"path":       path,
		"conditions": len(set),
	}).Debug("Loaded coefficient preset file")

	return set, true, nil
}

func validate(set domain.CoefficientSet) error {
	base, ok := set[domain.BaseConditionKey]
	if !ok {
		return fmt.Errorf("missing required %q entry", domain.BaseConditionKey)
	}
	// A tracked domain missing from the base entry would silently lose every
	// multiplier keyed to it, so a misspelled domain key must fail the load.
	for _, d := range domain.AllDomains {
		if _, present := base[d]; !present {
			return fmt.Errorf("%q entry is missing domain %q", domain.BaseConditionKey, d)
		}
	}
	return nil
}

// Transform derives a variant table by scaling each multiplier's distance
// from 1.0 by factor. Neutral entries are unchanged.
func Transform(base domain.CoefficientSet, factor float64) domain.CoefficientSet {
	out := make(domain.CoefficientSet, len(base))
	for key, mults := range base {
		entry := make(map[domain.Domain]float64, len(mults))
		for d, m := range mults {
			if m > 1 {
				entry[d] = 1 + (m-1)*factor
			} else {
				entry[d] = 1 - (1-m)*factor
			}
		}
		out[key] = entry
	}
	return out
}
