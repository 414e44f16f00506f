package costfunction

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg"
)

const (
	impassableSpeedFactor      = 0.25
	impassableSpeedFactorDecay = 0.02 // per percent grade above maximum
	impassableSpeedFactorFloor = 0.15
)

// decayedSpeedFactor. only feeds the diagnostic time estimate of an impassable edge.
func decayedSpeedFactor(excess float64) float64 {
	return math.Max(impassableSpeedFactorFloor, impassableSpeedFactor-impassableSpeedFactorDecay*excess)
}

// effectiveSpeed. km/h, never below the configured minimum speed
func (cf *SlopeCostFunction) effectiveSpeed(speedLimit, speedFactor float64, tod pkg.TimeOfDay) float64 {
	if speedLimit <= 0 {
		speedLimit = cf.config.DefaultSpeed
	}
	speed := speedLimit * speedFactor
	if tod == pkg.PEAK {
		speed *= cf.config.PeakSpeedFactor
	}
	return math.Max(speed, cf.config.MinSpeed)
}

// travelTimeMinutes. distance in meter, speed in km/h
func travelTimeMinutes(distance, speed float64) float64 {
	return distance / 1000 / speed * 60
}
