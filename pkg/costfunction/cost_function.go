package costfunction

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
)

const (
	comfortablePenalty = 1.0

	manageableBasePenalty = 1.5
	manageablePenaltyRate = 0.1 // per percent grade above comfortable

	difficultBasePenalty = 2.5
	difficultPenaltyRate = 0.2 // per percent grade above manageable

	comfortableSpeedFactor = 1.0
	manageableSpeedFactor  = 0.5
	difficultSpeedFactor   = 0.25
)

type Config struct {
	DefaultElevation  float64 // meter, elevation of nodes the terrain service had no data for
	DefaultSpeed      float64 // km/h, edges without a speed limit
	MinSpeed          float64 // km/h
	TimeCostPerMinute float64
	SlopeCostUnit     float64
	PeakSpeedFactor   float64 // multiplies effective speed at peak time
}

func DefaultConfig() Config {
	return Config{
		DefaultElevation:  0,
		DefaultSpeed:      50,
		MinSpeed:          5,
		TimeCostPerMinute: 60,
		SlopeCostUnit:     10,
		PeakSpeedFactor:   1.0,
	}
}

// EdgeCostResult. cost of traversing one edge with one vehicle.
type EdgeCostResult struct {
	TotalCost   float64 // +Inf if impassable
	ForcedCost  float64 // finite cost even if impassable, the difficult-tier penalty extended past the maximum slope
	Distance    float64 // meter
	Fuel        float64 // liter
	FuelCost    float64
	TimeMinutes float64
	Slope       SlopeInfo
	Passable    bool
	Tier        pkg.DifficultyTier
	Penalty     float64 // +Inf if impassable
	SpeedFactor float64
}

// SlopeCostFunction. edge cost = weighted sum of fuel cost, travel time cost & slope penalty.
type SlopeCostFunction struct {
	graph  *da.Graph
	config Config
}

func NewSlopeCostFunction(graph *da.Graph, config Config) *SlopeCostFunction {
	return &SlopeCostFunction{graph: graph, config: config}
}

func (cf *SlopeCostFunction) GetConfig() Config {
	return cf.config
}

// ClassifyDifficulty. compares |slope| against the vehicle thresholds, every bound is inclusive.
// returns the tier, slope penalty (+Inf when impassable) and the speed factor.
func ClassifyDifficulty(absSlope float64, thresholds vehicle.SlopeThresholds) (pkg.DifficultyTier, float64, float64) {
	switch {
	case absSlope <= thresholds.Comfortable:
		return pkg.COMFORTABLE, comfortablePenalty, comfortableSpeedFactor
	case absSlope <= thresholds.Manageable:
		return pkg.MANAGEABLE, manageableBasePenalty + manageablePenaltyRate*(absSlope-thresholds.Comfortable),
			manageableSpeedFactor
	case absSlope <= thresholds.Maximum:
		return pkg.DIFFICULT, difficultBasePenalty + difficultPenaltyRate*(absSlope-thresholds.Manageable),
			difficultSpeedFactor
	default:
		return pkg.IMPASSABLE, math.Inf(1), decayedSpeedFactor(absSlope - thresholds.Maximum)
	}
}

// EdgeCost. pure function of its inputs. fuelPricePerLiter converts liters into the fuel-cost term.
func (cf *SlopeCostFunction) EdgeCost(e *da.Edge, vc vehicle.Capability, tod pkg.TimeOfDay,
	mode pkg.OptimizationMode, fuelPricePerLiter float64) EdgeCostResult {

	slope := cf.ComputeSlope(e)
	absSlope := math.Abs(slope.SlopePercent)
	thresholds := vc.GetThresholds()

	tier, penalty, speedFactor := ClassifyDifficulty(absSlope, thresholds)
	passable := tier != pkg.IMPASSABLE

	distance := e.GetLength()
	distanceKm := distance / 1000

	fuel := vc.GetCityConsumption() / 100 * distanceKm * vc.GetFuelMultiplier(slope.Category)
	fuelCost := fuel * fuelPricePerLiter

	speed := cf.effectiveSpeed(e.GetSpeedLimit(), speedFactor, tod)
	timeMinutes := travelTimeMinutes(distance, speed)

	weights := GetModeWeights(mode)
	weighted := func(slopePenalty float64) float64 {
		return weights.Fuel*fuelCost +
			weights.Time*timeMinutes*cf.config.TimeCostPerMinute +
			weights.Slope*slopePenalty*cf.config.SlopeCostUnit
	}

	totalCost := math.Inf(1)
	forcedCost := 0.0
	if passable {
		totalCost = weighted(penalty)
		forcedCost = totalCost
	} else {
		forcedCost = weighted(difficultBasePenalty + difficultPenaltyRate*(absSlope-thresholds.Manageable))
	}

	return EdgeCostResult{
		TotalCost:   totalCost,
		ForcedCost:  forcedCost,
		Distance:    distance,
		Fuel:        fuel,
		FuelCost:    fuelCost,
		TimeMinutes: timeMinutes,
		Slope:       slope,
		Passable:    passable,
		Tier:        tier,
		Penalty:     penalty,
		SpeedFactor: speedFactor,
	}
}
