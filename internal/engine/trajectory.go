package engine

import (
	"fmt"
	"math"

	"github.com/aas-risk-engine/internal/domain"
)

const (
	// Risk accrues at a reduced slope before the typical event age.
	preEventProgressFactor = 0.7
	logisticSteepness      = 0.1
)

// Trajectory projects a domain's current absolute risk over every integer
// age from currentAge to the horizon. Unsupported methods are rejected, not
// defaulted.
func Trajectory(d domain.Domain, currentAge int, currentRisk float64, horizonAge int, method domain.TrajectoryMethod) (domain.Trajectory, error) {
	if horizonAge <= 0 {
		horizonAge = domain.DefaultHorizonAge
	}

	switch method {
	case domain.TrajectoryLinear:
		return linearTrajectory(d, currentAge, currentRisk, horizonAge), nil
	case domain.TrajectoryLogistic:
		return logisticTrajectory(d, currentAge, currentRisk, horizonAge), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, method)
	}
}

// linearTrajectory is piecewise linear: a slower segment up to the typical
// event age reaching 70% of current risk, then a faster segment closing the
// remainder by the horizon.
func linearTrajectory(d domain.Domain, currentAge int, currentRisk float64, horizonAge int) domain.Trajectory {
	eventAge := domain.EventAge(d)
	trajectory := make(domain.Trajectory, horizonAge-currentAge+1)

	for age := currentAge; age <= horizonAge; age++ {
		if age <= eventAge {
			progress := float64(age-currentAge) / float64(eventAge-currentAge+1)
			trajectory[age] = currentRisk * progress * preEventProgressFactor
		} else {
			base, ok := trajectory[eventAge]
			if !ok {
				base = currentRisk * preEventProgressFactor
			}
			remaining := currentRisk - base
			progress := float64(age-eventAge) / float64(horizonAge-eventAge+1)
			trajectory[age] = base + remaining*progress
		}
	}
	return trajectory
}

// logisticTrajectory is an S-curve with its midpoint halfway between the
// current age and the typical event age.
func logisticTrajectory(d domain.Domain, currentAge int, currentRisk float64, horizonAge int) domain.Trajectory {
	eventAge := domain.EventAge(d)
	midpoint := float64(currentAge+eventAge) / 2
	trajectory := make(domain.Trajectory, horizonAge-currentAge+1)

	for age := currentAge; age <= horizonAge; age++ {
		x := (float64(age) - midpoint) * logisticSteepness
		sigmoid := 1 / (1 + math.Exp(-x))
		trajectory[age] = currentRisk * sigmoid
	}
	return trajectory
}
