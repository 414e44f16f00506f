package metrics

import (
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/costfunction"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
)

// Metric. edge weight used by one direction of the search. an edge weighing pkg.INF_WEIGHT or more is not relaxed.
type Metric interface {
	GetWeight(e *da.Edge) float64
}

// DistanceMetric. edge length in meter, ignores slope feasibility.
type DistanceMetric struct{}

func NewDistanceMetric() *DistanceMetric {
	return &DistanceMetric{}
}

func (dm *DistanceMetric) GetWeight(e *da.Edge) float64 {
	return e.GetLength()
}

// SlopeMetric. full slope-aware edge cost under a relaxed vehicle capability.
// an edge incident to the target that is impassable even after relaxation is admitted
// at destinationPenalty times its forced cost, so a steep final approach does not cut off the destination.
type SlopeMetric struct {
	costFunction       *costfunction.SlopeCostFunction
	capability         vehicle.Capability
	timeOfDay          pkg.TimeOfDay
	mode               pkg.OptimizationMode
	fuelPricePerLiter  float64
	target             da.Index
	destinationPenalty float64
}

func NewSlopeMetric(costFunction *costfunction.SlopeCostFunction, capability vehicle.Capability,
	timeOfDay pkg.TimeOfDay, mode pkg.OptimizationMode, fuelPricePerLiter float64,
	target da.Index, relaxFactor, destinationPenalty float64) *SlopeMetric {
	return &SlopeMetric{
		costFunction:       costFunction,
		capability:         capability.Relaxed(relaxFactor),
		timeOfDay:          timeOfDay,
		mode:               mode,
		fuelPricePerLiter:  fuelPricePerLiter,
		target:             target,
		destinationPenalty: destinationPenalty,
	}
}

func (sm *SlopeMetric) GetCapability() vehicle.Capability {
	return sm.capability
}

func (sm *SlopeMetric) GetWeight(e *da.Edge) float64 {
	res := sm.costFunction.EdgeCost(e, sm.capability, sm.timeOfDay, sm.mode, sm.fuelPricePerLiter)
	if res.Passable {
		return res.TotalCost
	}
	if e.GetHead() == sm.target || e.GetTail() == sm.target {
		return sm.destinationPenalty * res.ForcedCost
	}
	return pkg.INF_WEIGHT
}
