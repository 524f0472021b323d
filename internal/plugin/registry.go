// Package plugin hosts the compiled-in contributor registry. Contributors
// extend the multiplier pipeline with add-on rules; they are constructed
// explicitly at startup and selected by name through configuration. There is
// no runtime code loading.
package plugin

import (
	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/domain"
)

// builtins maps contributor names to their constructors. A constructor may
// fail; failed contributors are logged and skipped, never fatal.
var builtins = map[string]func() (domain.Contributor, error){
	fertilityName: func() (domain.Contributor, error) { return NewFertilityContributor(), nil },
}

// BuiltinNames lists the compiled-in contributor names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

// Info is the wire-level description of a registered contributor.
type Info struct {
	Name             string              `json:"name"`
	Version          string              `json:"version"`
	Description      string              `json:"description"`
	AdditionalInputs []domain.InputField `json:"additional_inputs"`
}

// Registry holds the contributors enabled for this process.
type Registry struct {
	contributors []domain.Contributor
	logger       *logrus.Logger
}

// NewRegistry constructs the enabled contributors by name. Unknown names and
// constructor failures are logged and skipped.
func NewRegistry(enabled []string, logger *logrus.Logger) *Registry {
	r := &Registry{logger: logger}
	for _, name := range enabled {
		construct, ok := builtins[name]
		if !ok {
			logger.WithField("contributor", name).Warn("Unknown contributor name, skipping")
			continue
		}
		contributor, err := construct()
		if err != nil {
			logger.WithFields(logrus.Fields{
				"contributor": name,
				"error":       err.Error(),
			}).Warn("Failed to construct contributor, skipping")
			continue
		}
		r.contributors = append(r.contributors, contributor)
		logger.WithFields(logrus.Fields{
			"contributor": contributor.Name(),
			"version":     contributor.Version(),
		}).Info("Registered contributor")
	}
	return r
}

// Apply extends the multiplier set with every contributor's output, in
// registration order.
func (r *Registry) Apply(in domain.Input, mults domain.MultiplierSet) {
	for _, contributor := range r.contributors {
		mults.Extend(contributor.Multipliers(in))
	}
}

// Get returns a registered contributor by name.
func (r *Registry) Get(name string) (domain.Contributor, bool) {
	for _, contributor := range r.contributors {
		if contributor.Name() == name {
			return contributor, true
		}
	}
	return nil, false
}

// List describes every registered contributor.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.contributors))
	for _, contributor := range r.contributors {
		infos = append(infos, Info{
			Name:             contributor.Name(),
			Version:          contributor.Version(),
			Description:      contributor.Description(),
			AdditionalInputs: contributor.AdditionalInputs(),
		})
	}
	return infos
}
