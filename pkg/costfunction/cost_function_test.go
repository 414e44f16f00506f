package costfunction

import (
	"math"
	"testing"

	"github.com/lintang-b-s/Slopex/pkg"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFuelPrice = 42.15

func elevation(v float64) *float64 {
	return &v
}

// buildEdge. two nodes 1000 m apart (a -> b heading north) joined by one oneway edge.
func buildEdge(t *testing.T, fromElev, toElev *float64, speedLimit float64) (*da.Graph, *da.Edge) {
	t.Helper()
	lat, lon := -7.7956, 110.3695
	lat2, lon2 := geo.GetDestinationPoint(lat, lon, 0, 1.0)

	network := da.NewRoadNetwork()
	network.AddNode("a", lat, lon, fromElev)
	network.AddNode("b", lat2, lon2, toElev)
	network.AddEdge(da.RawEdge{From: "a", To: "b", Distance: 1000, SpeedLimit: speedLimit, Direction: "oneway",
		RoadType: "secondary"})

	g := da.NewGraph(network)
	require.Equal(t, 1, g.NumberOfEdges())
	return g, g.GetEdge(0)
}

func mustCapability(t *testing.T, spec vehicle.Spec) vehicle.Capability {
	t.Helper()
	vc, err := vehicle.NewCapability(spec)
	require.NoError(t, err)
	return vc
}

var (
	lowPowerPetrol = vehicle.Spec{HP: 60, TorqueNm: 110, WeightKg: 1000, FuelConsumptionCity: 6,
		FuelType: "petrol"} // thresholds 8 / 12 / 15
	clio = vehicle.Spec{HP: 100, TorqueNm: 160, WeightKg: 1100, FuelConsumptionCity: 5.7,
		FuelConsumptionHighway: 4.2, FuelType: "Benzin"}
)

func TestEdgeCostFlat(t *testing.T) {
	g, e := buildEdge(t, elevation(120), elevation(120), 50)
	cf := NewSlopeCostFunction(g, DefaultConfig())

	for _, spec := range []vehicle.Spec{lowPowerPetrol, clio} {
		vc := mustCapability(t, spec)
		res := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)

		assert.Equal(t, 0.0, res.Slope.SlopePercent)
		assert.Equal(t, pkg.FLAT, res.Slope.Category)
		assert.True(t, res.Passable)
		assert.Equal(t, pkg.COMFORTABLE, res.Tier)
		assert.InDelta(t, spec.FuelConsumptionCity/100*1.0*1.0, res.Fuel, 1e-9)
		assert.InDelta(t, 1.2, res.TimeMinutes, 1e-9)
		assert.False(t, math.IsInf(res.TotalCost, 1))
	}
}

func TestEdgeCostWeightedSum(t *testing.T) {
	g, e := buildEdge(t, elevation(0), elevation(0), 50)
	cf := NewSlopeCostFunction(g, DefaultConfig())
	vc := mustCapability(t, clio)

	fuelCost := 0.057 * testFuelPrice
	timeCost := 1.2 * 60
	slopeCost := 1.0 * 10

	cases := []struct {
		mode     pkg.OptimizationMode
		expected float64
	}{
		{pkg.BALANCED, fuelCost + timeCost + slopeCost},
		{pkg.FUEL_SAVER, fuelCost + timeCost + slopeCost},
		{pkg.TIME_SAVER, fuelCost + timeCost + slopeCost},
		{pkg.POWER_OPTIMIZED, 1.5*fuelCost + 0.8*timeCost + 2.5*slopeCost},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			res := cf.EdgeCost(e, vc, pkg.OFFPEAK, c.mode, testFuelPrice)
			assert.InDelta(t, c.expected, res.TotalCost, 1e-9)
			assert.InDelta(t, fuelCost, res.FuelCost, 1e-9)
		})
	}
}

func TestEdgeCostImpassable(t *testing.T) {
	g, e := buildEdge(t, elevation(0), elevation(200), 50)
	cf := NewSlopeCostFunction(g, DefaultConfig())
	vc := mustCapability(t, lowPowerPetrol)
	require.Equal(t, 15.0, vc.GetMaximumSlope())

	res := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)
	assert.InDelta(t, 20.0, res.Slope.SlopePercent, 1e-6)
	assert.Equal(t, pkg.EXTREME, res.Slope.Category)
	assert.False(t, res.Passable)
	assert.Equal(t, pkg.IMPASSABLE, res.Tier)
	assert.True(t, math.IsInf(res.TotalCost, 1))
	assert.True(t, math.IsInf(res.Penalty, 1))

	// diagnostics stay finite
	assert.False(t, math.IsInf(res.ForcedCost, 1))
	assert.Greater(t, res.ForcedCost, 0.0)
	assert.InDelta(t, 0.25-0.02*5, res.SpeedFactor, 1e-6)
	assert.InDelta(t, 2.2*0.06, res.Fuel, 1e-9)
}

func TestEdgeCostDescent(t *testing.T) {
	g, e := buildEdge(t, elevation(100), elevation(50), 50)
	cf := NewSlopeCostFunction(g, DefaultConfig())
	vc := mustCapability(t, lowPowerPetrol)

	res := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)
	assert.InDelta(t, -5.0, res.Slope.SlopePercent, 1e-6)
	assert.Equal(t, pkg.DESCENT, res.Slope.Category)
	assert.Equal(t, pkg.COMFORTABLE, res.Tier)
	assert.InDelta(t, 0.06*0.7, res.Fuel, 1e-9)
	assert.InDelta(t, -50.0, res.Slope.ElevationChange, 1e-9)
}

func TestEdgeCostDefaultElevation(t *testing.T) {
	g, e := buildEdge(t, nil, elevation(100), 50)

	cfg := DefaultConfig()
	cfg.DefaultElevation = 45
	cf := NewSlopeCostFunction(g, cfg)

	slope := cf.ComputeSlope(e)
	assert.Equal(t, 45.0, slope.FromElevation)
	assert.InDelta(t, 5.5, slope.SlopePercent, 1e-6)
	assert.Equal(t, pkg.MODERATE, slope.Category)

	cf = NewSlopeCostFunction(g, DefaultConfig())
	slope = cf.ComputeSlope(e)
	assert.InDelta(t, 10.0, slope.SlopePercent, 1e-6)
}

func TestEdgeCostSpeed(t *testing.T) {
	vc := mustCapability(t, clio)

	t.Run("missing speed limit uses default speed", func(t *testing.T) {
		g, e := buildEdge(t, elevation(0), elevation(0), 0)
		cf := NewSlopeCostFunction(g, DefaultConfig())
		res := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)
		assert.InDelta(t, 1.2, res.TimeMinutes, 1e-9)
	})

	t.Run("speed floor", func(t *testing.T) {
		g, e := buildEdge(t, elevation(0), elevation(0), 3)
		cf := NewSlopeCostFunction(g, DefaultConfig())
		res := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)
		assert.InDelta(t, 12.0, res.TimeMinutes, 1e-9)
	})

	t.Run("peak factor", func(t *testing.T) {
		g, e := buildEdge(t, elevation(0), elevation(0), 50)
		cfg := DefaultConfig()
		cfg.PeakSpeedFactor = 0.5
		cf := NewSlopeCostFunction(g, cfg)
		peak := cf.EdgeCost(e, vc, pkg.PEAK, pkg.BALANCED, testFuelPrice)
		offpeak := cf.EdgeCost(e, vc, pkg.OFFPEAK, pkg.BALANCED, testFuelPrice)
		assert.InDelta(t, 2*offpeak.TimeMinutes, peak.TimeMinutes, 1e-9)
	})
}

func TestClassifySlope(t *testing.T) {
	cases := []struct {
		slope    float64
		expected pkg.SlopeCategory
	}{
		{0, pkg.FLAT},
		{1.99, pkg.FLAT},
		{-1.99, pkg.FLAT},
		{-2, pkg.GENTLE},
		{-2.01, pkg.DESCENT},
		{-30, pkg.DESCENT},
		{2, pkg.GENTLE},
		{4.99, pkg.GENTLE},
		{5, pkg.MODERATE},
		{10, pkg.STEEP},
		{14.99, pkg.STEEP},
		{15, pkg.EXTREME},
		{40, pkg.EXTREME},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ClassifySlope(c.slope), "slope %v", c.slope)
	}
}

func TestClassifyDifficulty(t *testing.T) {
	thresholds := vehicle.SlopeThresholds{Comfortable: 8, Manageable: 12, Maximum: 15}

	tier, penalty, speedFactor := ClassifyDifficulty(8, thresholds)
	assert.Equal(t, pkg.COMFORTABLE, tier)
	assert.Equal(t, 1.0, penalty)
	assert.Equal(t, 1.0, speedFactor)

	tier, penalty, speedFactor = ClassifyDifficulty(10, thresholds)
	assert.Equal(t, pkg.MANAGEABLE, tier)
	assert.InDelta(t, 1.7, penalty, 1e-9)
	assert.Equal(t, 0.5, speedFactor)

	tier, penalty, _ = ClassifyDifficulty(12, thresholds)
	assert.Equal(t, pkg.MANAGEABLE, tier)
	assert.InDelta(t, 1.9, penalty, 1e-9)

	tier, penalty, speedFactor = ClassifyDifficulty(15, thresholds)
	assert.Equal(t, pkg.DIFFICULT, tier)
	assert.InDelta(t, 3.1, penalty, 1e-9)
	assert.Equal(t, 0.25, speedFactor)

	tier, penalty, speedFactor = ClassifyDifficulty(30, thresholds)
	assert.Equal(t, pkg.IMPASSABLE, tier)
	assert.True(t, math.IsInf(penalty, 1))
	assert.Equal(t, 0.15, speedFactor)
}

func TestPenaltyMonotonic(t *testing.T) {
	thresholds := vehicle.SlopeThresholds{Comfortable: 8, Manageable: 12, Maximum: 15}

	_, prev, _ := ClassifyDifficulty(8.05, thresholds)
	for s := 8.1; s < 15; s += 0.05 {
		_, penalty, _ := ClassifyDifficulty(s, thresholds)
		assert.Greater(t, penalty, prev, "slope %v", s)
		prev = penalty
	}
}

func TestGetModeWeights(t *testing.T) {
	assert.Equal(t, ModeWeights{Fuel: 1.5, Time: 0.8, Slope: 2.5}, GetModeWeights(pkg.POWER_OPTIMIZED))
	for _, mode := range []pkg.OptimizationMode{pkg.FUEL_SAVER, pkg.TIME_SAVER, pkg.BALANCED} {
		assert.Equal(t, ModeWeights{Fuel: 1, Time: 1, Slope: 1}, GetModeWeights(mode))
	}
}
