package exposure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aas-risk-engine/internal/domain"
)

func entry(compound string, mg float64, start, duration int, oral bool) domain.DoseEntry {
	return domain.DoseEntry{
		Compound:      compound,
		WeeklyMG:      mg,
		StartWeek:     start,
		DurationWeeks: duration,
		IsOral:        oral,
	}
}

func TestAggregate_EmptyRegimen(t *testing.T) {
	metrics := Aggregate(nil)

	assert.Zero(t, metrics.AvgWeeklyTE)
	assert.Zero(t, metrics.MaxWeeklyTE)
	assert.Zero(t, metrics.WeeksSupraPhysiologic)
	assert.Equal(t, 1.0, metrics.RecoveryRatio)
	assert.Zero(t, metrics.Oral17AAWeeks)
	assert.Zero(t, metrics.Oral17AAHighDoseWeeks)
	assert.False(t, metrics.HasHeavyCompounds)
	assert.False(t, metrics.HasDHTCompounds)
	assert.Zero(t, metrics.LongestSupraStreak)
}

func TestAggregate_SingleInjectable(t *testing.T) {
	metrics := Aggregate([]domain.DoseEntry{
		entry("testosterone", 250, 1, 12, false),
	})

	assert.InDelta(t, 250.0, metrics.AvgWeeklyTE, 1e-9)
	assert.InDelta(t, 250.0, metrics.MaxWeeklyTE, 1e-9)
	assert.Equal(t, 12, metrics.WeeksSupraPhysiologic)
	assert.InDelta(t, 40.0/12.0, metrics.RecoveryRatio, 1e-9)
	assert.Equal(t, 12, metrics.LongestSupraStreak)
	assert.False(t, metrics.HasHeavyCompounds)
}

func TestAggregate_PotencyNormalization(t *testing.T) {
	// 300 mg trenbolone at 2.0 potency is 600 mg TE.
	metrics := Aggregate([]domain.DoseEntry{
		entry("trenbolone", 300, 1, 10, false),
	})

	assert.InDelta(t, 600.0, metrics.AvgWeeklyTE, 1e-9)
	assert.True(t, metrics.HasHeavyCompounds)
}

func TestAggregate_OverlappingEntriesSum(t *testing.T) {
	metrics := Aggregate([]domain.DoseEntry{
		entry("testosterone", 200, 1, 20, false),
		entry("nandrolone", 100, 5, 10, false), // 120 TE overlapping weeks 5-14
	})

	assert.InDelta(t, 320.0, metrics.MaxWeeklyTE, 1e-9)
	// Weeks 1-4 and 15-20 at 200, weeks 5-14 at 320.
	avg := (10*200.0 + 10*320.0) / 20.0
	assert.InDelta(t, avg, metrics.AvgWeeklyTE, 1e-9)
}

func TestAggregate_TruncatesAtWeek52(t *testing.T) {
	metrics := Aggregate([]domain.DoseEntry{
		entry("testosterone", 200, 50, 10, false),
	})

	// Only weeks 50-52 are inside the window.
	assert.Equal(t, 3, metrics.WeeksSupraPhysiologic)
	assert.Equal(t, 3, metrics.LongestSupraStreak)
}

func TestAggregate_OralsTrackedSeparately(t *testing.T) {
	metrics := Aggregate([]domain.DoseEntry{
		entry("anadrol", 350, 1, 6, true),
	})

	// Oral dose never reaches the TE sum.
	assert.Zero(t, metrics.AvgWeeklyTE)
	assert.Zero(t, metrics.MaxWeeklyTE)
	assert.InDelta(t, 6.0, metrics.Oral17AAWeeks, 1e-9)
	assert.InDelta(t, 6.0, metrics.Oral17AAHighDoseWeeks, 1e-9)
	assert.True(t, metrics.HasHeavyCompounds)
}

func TestAggregate_OverlappingOralsWeighted(t *testing.T) {
	// Two orals overlapping the same weeks split the week fraction.
	metrics := Aggregate([]domain.DoseEntry{
		entry("anavar", 40, 1, 8, true),
		entry("winstrol", 60, 1, 8, true),
	})

	assert.InDelta(t, 8.0, metrics.Oral17AAWeeks, 1e-9)
	// Only winstrol exceeds the 50 mg high-dose threshold.
	assert.InDelta(t, 4.0, metrics.Oral17AAHighDoseWeeks, 1e-9)
}

func TestAggregate_StreakResetsOnRecoveryWeeks(t *testing.T) {
	metrics := Aggregate([]domain.DoseEntry{
		entry("testosterone", 400, 1, 8, false),
		entry("testosterone", 400, 20, 12, false),
	})

	assert.Equal(t, 20, metrics.WeeksSupraPhysiologic)
	assert.Equal(t, 12, metrics.LongestSupraStreak)
}

func TestCategorize(t *testing.T) {
	normalize := func(raw domain.RawInput) domain.Input {
		in, err := raw.Normalize()
		require.NoError(t, err)
		return in
	}

	tests := []struct {
		name     string
		regimen  []domain.DoseEntry
		raw      domain.RawInput
		expected domain.RiskCategory
	}{
		{
			name:     "Physiologic TRT",
			regimen:  []domain.DoseEntry{entry("testosterone", 140, 1, 52, false)},
			expected: domain.CategoryPhysiologic,
		},
		{
			name:     "No regimen is physiologic",
			expected: domain.CategoryPhysiologic,
		},
		{
			name:     "Moderate cycle",
			regimen:  []domain.DoseEntry{entry("testosterone", 250, 1, 12, false)},
			expected: domain.CategoryModerate,
		},
		{
			name: "High dose is high risk",
			regimen: []domain.DoseEntry{
				entry("testosterone", 500, 1, 20, false),
			},
			expected: domain.CategoryHighRisk,
		},
		{
			name: "Extended orals are high risk",
			regimen: []domain.DoseEntry{
				entry("testosterone", 200, 1, 12, false),
				entry("dianabol", 210, 1, 10, true),
			},
			expected: domain.CategoryHighRisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw.Regimen = tt.regimen
			in := normalize(tt.raw)
			metrics := Aggregate(in.Regimen)
			assert.Equal(t, tt.expected, Categorize(metrics, in))
		})
	}
}

func TestCategorize_HematocritOverride(t *testing.T) {
	hct := 56.0
	raw := domain.RawInput{
		Regimen: []domain.DoseEntry{entry("testosterone", 200, 1, 12, false)},
		Labs:    domain.RawLabs{Hematocrit: &hct},
	}
	in, err := raw.Normalize()
	require.NoError(t, err)

	metrics := Aggregate(in.Regimen)
	assert.Equal(t, domain.CategoryHighRisk, Categorize(metrics, in))
}
