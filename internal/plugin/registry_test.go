package plugin

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNewRegistry_SkipsUnknownNames(t *testing.T) {
	r := NewRegistry([]string{"fertility", "telemetry"}, testLogger())

	infos := r.List()
	require.Len(t, infos, 1)
	assert.Equal(t, "fertility", infos[0].Name)
	assert.NotEmpty(t, infos[0].AdditionalInputs)

	_, ok := r.Get("fertility")
	assert.True(t, ok)
	_, ok = r.Get("telemetry")
	assert.False(t, ok)
}

func TestRegistry_ApplyExtendsMultipliers(t *testing.T) {
	r := NewRegistry([]string{"fertility"}, testLogger())

	smoking := true
	raw := domain.RawInput{Lifestyle: domain.RawLifestyle{Smoking: &smoking}}
	in, err := raw.Normalize()
	require.NoError(t, err)

	mults := domain.MultiplierSet{domain.DomainEndocrine: {1.5}}
	r.Apply(in, mults)

	// Existing entries are kept; contributor output is appended after them.
	require.NotEmpty(t, mults[domain.DomainEndocrine])
	assert.Equal(t, 1.5, mults[domain.DomainEndocrine][0])
	assert.Contains(t, mults[domain.DomainEndocrine], 1.25)
}

func TestRegistry_EmptyIsInert(t *testing.T) {
	r := NewRegistry(nil, testLogger())

	in, err := domain.RawInput{}.Normalize()
	require.NoError(t, err)

	mults := domain.MultiplierSet{domain.DomainASCVD: {}}
	r.Apply(in, mults)
	assert.Empty(t, mults[domain.DomainASCVD])
	assert.Empty(t, r.List())
}

func TestBuiltinNames(t *testing.T) {
	assert.Contains(t, BuiltinNames(), "fertility")
}
