// Package exposure turns a dosing regimen into a 52-week timeline and the
// summary metrics the risk rules consume.
package exposure

import (
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/potency"
)

// Timeline holds the week-indexed arrays built from a regimen. Weeks are
// 0-based internally; entry start weeks are 1-based.
type Timeline struct {
	InjectableTE [domain.EvaluationWeeks]float64
	OralActive   [domain.EvaluationWeeks]bool
	OralDoseMG   [domain.EvaluationWeeks]float64
}

// BuildTimeline scans every entry's active window, adding injectable TE or
// marking the oral arrays. Segments past week 52 are truncated.
func BuildTimeline(regimen []domain.DoseEntry) Timeline {
	var tl Timeline
	for _, entry := range regimen {
		start := entry.StartWeek - 1
		if start < 0 {
			start = 0
		}
		end := start + entry.DurationWeeks
		if end > domain.EvaluationWeeks {
			end = domain.EvaluationWeeks
		}
		te := potency.WeeklyTE(entry.Compound, entry.WeeklyMG)
		for week := start; week < end; week++ {
			if entry.IsOral {
				tl.OralActive[week] = true
				tl.OralDoseMG[week] += entry.WeeklyMG
			} else {
				tl.InjectableTE[week] += te
			}
		}
	}
	return tl
}

// Aggregate computes the summary exposure metrics for a regimen. An empty
// regimen yields all zero/neutral defaults, never an error.
func Aggregate(regimen []domain.DoseEntry) domain.ExposureMetrics {
	metrics := domain.ExposureMetrics{RecoveryRatio: 1.0}
	if len(regimen) == 0 {
		return metrics
	}

	oralEntries := 0
	for _, entry := range regimen {
		if entry.IsOral {
			oralEntries++
		}
		if potency.IsHeavy(entry.Compound) {
			metrics.HasHeavyCompounds = true
		}
		if potency.IsDHTDerived(entry.Compound) {
			metrics.HasDHTCompounds = true
		}
	}

	tl := BuildTimeline(regimen)

	// Oral 17AA week fractions, weighted by 1/(oral entry count) so that
	// overlapping orals in one week do not double count.
	if oralEntries > 0 {
		weight := 1.0 / float64(oralEntries)
		for _, entry := range regimen {
			if !entry.IsOral || !potency.IsOral17AA(entry.Compound) {
				continue
			}
			start := entry.StartWeek - 1
			end := start + entry.DurationWeeks
			if end > domain.EvaluationWeeks {
				end = domain.EvaluationWeeks
			}
			weeks := float64(end - start)
			if weeks < 0 {
				weeks = 0
			}
			metrics.Oral17AAWeeks += weeks * weight
			if entry.WeeklyMG > domain.HighDoseOralMG {
				metrics.Oral17AAHighDoseWeeks += weeks * weight
			}
		}
	}

	var teSum float64
	activeWeeks := 0
	streak := 0
	for _, te := range tl.InjectableTE {
		if te > 0 {
			teSum += te
			activeWeeks++
		}
		if te > metrics.MaxWeeklyTE {
			metrics.MaxWeeklyTE = te
		}
		if te > domain.PhysiologicThresholdMG {
			metrics.WeeksSupraPhysiologic++
			streak++
			if streak > metrics.LongestSupraStreak {
				metrics.LongestSupraStreak = streak
			}
		} else {
			streak = 0
		}
	}
	if activeWeeks > 0 {
		metrics.AvgWeeklyTE = teSum / float64(activeWeeks)
	}

	// Recovery ratio: weeks at-or-below over weeks above; stays at the 1.0
	// default when no week is supra-physiologic.
	if metrics.WeeksSupraPhysiologic > 0 {
		below := domain.EvaluationWeeks - metrics.WeeksSupraPhysiologic
		metrics.RecoveryRatio = float64(below) / float64(metrics.WeeksSupraPhysiologic)
	}

	return metrics
}

// Categorize buckets the scenario by overall exposure severity.
func Categorize(metrics domain.ExposureMetrics, in domain.Input) domain.RiskCategory {
	if metrics.AvgWeeklyTE <= domain.PhysiologicThresholdMG && metrics.Oral17AAWeeks == 0 {
		return domain.CategoryPhysiologic
	}
	if metrics.AvgWeeklyTE > 300 ||
		metrics.Oral17AAWeeks > 8 ||
		metrics.RecoveryRatio < 0.75 ||
		in.Labs.Hematocrit > 54 {
		return domain.CategoryHighRisk
	}
	return domain.CategoryModerate
}
