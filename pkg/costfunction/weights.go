package costfunction

import "github.com/lintang-b-s/Slopex/pkg"

// ModeWeights. multipliers of the fuel, time and slope terms of the edge cost
type ModeWeights struct {
	Fuel  float64
	Time  float64
	Slope float64
}

var (
	powerOptimizedWeights = ModeWeights{Fuel: 1.5, Time: 0.8, Slope: 2.5}
	neutralWeights        = ModeWeights{Fuel: 1.0, Time: 1.0, Slope: 1.0}
)

// GetModeWeights. only power_optimized deviates from equal weights.
func GetModeWeights(mode pkg.OptimizationMode) ModeWeights {
	if mode == pkg.POWER_OPTIMIZED {
		return powerOptimizedWeights
	}
	return neutralWeights
}
