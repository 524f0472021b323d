package domain

import "context"

// CoefficientSource resolves a preset name to its coefficient table.
// Repeated loads of the same name must be idempotent.
type CoefficientSource interface {
	Load(name PresetName) (CoefficientSet, error)
}

// InputField describes one additional input a contributor needs collected.
type InputField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // bool | number | select
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Default any      `json:"default,omitempty"`
	Options []string `json:"options,omitempty"`
	Help    string   `json:"help,omitempty"`
}

// Contributor is the extension contract for add-on multiplier providers.
// Contributors are registered by explicit construction at startup; there is
// no runtime code loading.
type Contributor interface {
	// Name identifies the contributor and namespaces its input section.
	Name() string
	Version() string
	Description() string

	// Multipliers returns additional domain-keyed multiplier lists derived
	// from the full normalized input. It may introduce domains absent from
	// the internal set.
	Multipliers(in Input) MultiplierSet

	// AdditionalInputs declares the extra input fields this contributor
	// reads from its PluginData section.
	AdditionalInputs() []InputField
}

// Archive is the optional durable backing for the scenario store. The store
// itself remains authoritative in memory; archive failures are logged, not
// fatal.
type Archive interface {
	Save(ctx context.Context, s *Scenario) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]*Scenario, error)
	Close() error
}
