package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	baseLat = 38.4237
	baseLon = 27.1428
)

func elevation(v float64) *float64 {
	return &v
}

func pointAt(northKm, eastKm float64) geo.Coordinate {
	lat, lon := geo.GetDestinationPoint(baseLat, baseLon, 0, northKm)
	if eastKm > 0 {
		lat, lon = geo.GetDestinationPoint(lat, lon, 90, eastKm)
	}
	return geo.NewCoordinate(lat, lon)
}

// a - b - c : bidirectional 1 km roads climbing 3% then 6%.
// x -> y    : oneway road, unreachable from a.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	network := datastructure.NewRoadNetwork()
	add := func(id string, c geo.Coordinate, elev float64) {
		network.AddNode(id, c.Lat, c.Lon, elevation(elev))
	}
	add("a", pointAt(0, 0), 10)
	add("b", pointAt(1, 0), 40)
	add("c", pointAt(2, 0), 100)
	add("x", pointAt(0, 2), 10)
	add("y", pointAt(1, 2), 10)

	network.AddEdge(datastructure.RawEdge{From: "a", To: "b", Distance: 1000, SpeedLimit: 50,
		Direction: "bidirectional", RoadType: "secondary", StreetName: "Ataturk Cd."})
	network.AddEdge(datastructure.RawEdge{From: "b", To: "c", Distance: 1000, SpeedLimit: 50,
		Direction: "bidirectional", RoadType: "residential"})
	network.AddEdge(datastructure.RawEdge{From: "x", To: "y", Distance: 1000, SpeedLimit: 50, Direction: "oneway"})

	e, err := NewEngineWithGraph(datastructure.NewGraph(network), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func egea(t *testing.T) vehicle.Spec {
	t.Helper()
	spec, ok := vehicle.LookupSpec("Fiat Egea 1.3 Multijet")
	require.True(t, ok)
	return spec
}

func TestFindRoute(t *testing.T) {
	e := newTestEngine(t)

	summary, err := e.FindRoute(RouteQuery{
		Origin:      pointAt(0.01, 0),
		Destination: pointAt(1.99, 0),
		Vehicle:     egea(t),
		TimeOfDay:   pkg.OFFPEAK,
		Mode:        pkg.FUEL_SAVER,
	})
	require.NoError(t, err)
	assert.Empty(t, summary.Error)
	assert.Equal(t, []string{"a", "b", "c"}, summary.Path)
	require.Len(t, summary.Segments, 2)
	assert.InDelta(t, 2000.0, summary.TotalDistance, 1e-9)
	assert.InDelta(t, 6.0, summary.MaxSlope, 1e-6)
	assert.Equal(t, pkg.FUEL_SAVER, summary.Mode)
	assert.Equal(t, "Fiat Egea 1.3 Multijet", summary.Vehicle)
	assert.True(t, summary.Feasible)
	assert.Equal(t, 0, summary.CriticalSections)
	require.NotNil(t, summary.Stats)
	assert.True(t, summary.Stats.Found)

	// diesel price from config when none is given
	assert.InDelta(t, summary.TotalFuel*43.25, summary.TotalFuelCost, 1e-9)
	assert.Equal(t, "Ataturk Cd.", summary.Segments[0].StreetName)
	assert.False(t, summary.Segments[0].Oneway)
}

func TestFindRouteExplicitFuelPrice(t *testing.T) {
	e := newTestEngine(t)
	summary, err := e.FindRoute(RouteQuery{
		Origin:            pointAt(0, 0),
		Destination:       pointAt(2, 0),
		Vehicle:           egea(t),
		Mode:              pkg.BALANCED,
		FuelPricePerLiter: 1.0,
	})
	require.NoError(t, err)
	assert.InDelta(t, summary.TotalFuel, summary.TotalFuelCost, 1e-9)
}

func TestFindRouteErrors(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name     string
		query    RouteQuery
		expected error
		code     error
	}{
		{
			name:     "origin far from network",
			query:    RouteQuery{Origin: pointAt(-5, 0), Destination: pointAt(2, 0), Vehicle: egea(t)},
			expected: ErrLocateFailure,
			code:     util.ErrNotFound,
		},
		{
			name:     "destination between nodes",
			query:    RouteQuery{Origin: pointAt(0, 0), Destination: pointAt(0.5, 1), Vehicle: egea(t)},
			expected: ErrLocateFailure,
			code:     util.ErrNotFound,
		},
		{
			name:     "same node",
			query:    RouteQuery{Origin: pointAt(0, 0), Destination: pointAt(0.05, 0), Vehicle: egea(t)},
			expected: ErrSameNode,
			code:     util.ErrBadParamInput,
		},
		{
			name: "invalid vehicle",
			query: RouteQuery{Origin: pointAt(0, 0), Destination: pointAt(2, 0),
				Vehicle: vehicle.Spec{HP: 100, FuelType: "petrol"}},
			expected: ErrInvalidVehicle,
			code:     util.ErrBadParamInput,
		},
		{
			name:     "invalid coordinate",
			query:    RouteQuery{Origin: geo.NewCoordinate(120, 0), Destination: pointAt(2, 0), Vehicle: egea(t)},
			expected: ErrInvalidCoord,
			code:     util.ErrBadParamInput,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			summary, err := e.FindRoute(c.query)
			require.Error(t, err)
			assert.Nil(t, summary)
			assert.True(t, errors.Is(err, c.expected), err.Error())
			assert.Equal(t, c.code, util.ErrorCode(err))
		})
	}
}

func TestFindRouteNotFound(t *testing.T) {
	e := newTestEngine(t)

	summary, err := e.FindRoute(RouteQuery{
		Origin:      pointAt(0, 0),
		Destination: pointAt(1, 2),
		Vehicle:     egea(t),
		Mode:        pkg.BALANCED,
	})
	require.NoError(t, err)
	assert.Equal(t, routing.ERR_ROUTE_NOT_FOUND, summary.Error)
	assert.Equal(t, []string{"a"}, summary.Path)
	assert.Empty(t, summary.Segments)
	assert.Equal(t, 0.0, summary.TotalDistance)
	assert.Equal(t, 0.0, summary.TotalFuel)
	assert.Equal(t, 0.0, summary.TotalTimeMinutes)
	assert.False(t, summary.Stats.Found)
}

func TestCompareRoutes(t *testing.T) {
	e := newTestEngine(t)

	summaries, err := e.CompareRoutes(context.Background(), RouteQuery{
		Origin:      pointAt(0, 0),
		Destination: pointAt(2, 0),
		Vehicle:     egea(t),
		TimeOfDay:   pkg.PEAK,
	})
	require.NoError(t, err)
	require.Len(t, summaries, len(pkg.AllOptimizationModes))
	for i, mode := range pkg.AllOptimizationModes {
		assert.Equal(t, mode, summaries[i].Mode)
		assert.Equal(t, []string{"a", "b", "c"}, summaries[i].Path)
		assert.Equal(t, pkg.PEAK, summaries[i].TimeOfDay)
	}

	_, err = e.CompareRoutes(context.Background(), RouteQuery{
		Origin:      pointAt(0, 0),
		Destination: pointAt(0, 0),
		Vehicle:     egea(t),
	})
	assert.True(t, errors.Is(err, ErrSameNode))
}

func TestFindRoutes(t *testing.T) {
	e := newTestEngine(t)

	queries := []RouteQuery{
		{Origin: pointAt(0, 0), Destination: pointAt(2, 0), Vehicle: egea(t)},
		{Origin: pointAt(2, 0), Destination: pointAt(0, 0), Vehicle: egea(t)},
		{Origin: pointAt(0, 0), Destination: pointAt(0, 0), Vehicle: egea(t)},
	}
	results := e.FindRoutes(queries)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, []string{"a", "b", "c"}, results[0].Summary.Path)
	require.NoError(t, results[1].Err)
	assert.Equal(t, []string{"c", "b", "a"}, results[1].Summary.Path)
	assert.Greater(t, results[1].Summary.ElevationLoss, 0.0)
	assert.True(t, errors.Is(results[2].Err, ErrSameNode))
}

func TestCapabilityCache(t *testing.T) {
	e := newTestEngine(t)
	spec := egea(t)

	first, err := e.Capability(spec)
	require.NoError(t, err)
	assert.Equal(t, 1, e.capabilityCache.Len())

	second, err := e.Capability(spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.capabilityCache.Len())
	assert.InDelta(t, 20.0, first.GetMaximumSlope(), 1e-9)
}

func TestFuelPrices(t *testing.T) {
	fp := DefaultConfig().FuelPrices
	assert.Equal(t, 42.15, fp.Get(vehicle.PETROL))
	assert.Equal(t, 43.25, fp.Get(vehicle.DIESEL))
	assert.Equal(t, 24.85, fp.Get(vehicle.LPG))
	assert.Equal(t, 42.15, fp.Get(vehicle.OTHER_FUEL))
}
