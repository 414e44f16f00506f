package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingEngine struct {
	queries []engine.RouteQuery
}

func (e *recordingEngine) FindRoute(q engine.RouteQuery) (*routing.RouteSummary, error) {
	e.queries = append(e.queries, q)
	return &routing.RouteSummary{Mode: q.Mode, TimeOfDay: q.TimeOfDay, Vehicle: q.Vehicle.Name}, nil
}

func (e *recordingEngine) CompareRoutes(ctx context.Context, q engine.RouteQuery) ([]*routing.RouteSummary, error) {
	e.queries = append(e.queries, q)
	return []*routing.RouteSummary{}, nil
}

func (e *recordingEngine) FindRoutes(queries []engine.RouteQuery) []engine.BatchResult {
	results := make([]engine.BatchResult, len(queries))
	for i, q := range queries {
		summary, err := e.FindRoute(q)
		results[i] = engine.BatchResult{Summary: summary, Err: err}
	}
	return results
}

func params(vehicleName string) RouteParams {
	return RouteParams{
		OriginLat:      38.4237,
		OriginLon:      27.1428,
		DestinationLat: 38.4417,
		DestinationLon: 27.1428,
		Vehicle:        vehicleName,
	}
}

func TestComputeRouteResolvesQuery(t *testing.T) {
	eng := &recordingEngine{}
	rs := NewRoutingService(zap.NewNop(), eng)

	p := params("fiat egea 1.3 multijet")
	p.TimeOfDay = "peak"
	p.Mode = "time_saver"
	p.FuelPricePerLiter = 44

	summary, err := rs.ComputeRoute(p)
	require.NoError(t, err)
	require.Len(t, eng.queries, 1)

	q := eng.queries[0]
	assert.Equal(t, "Fiat Egea 1.3 Multijet", q.Vehicle.Name)
	assert.Equal(t, pkg.PEAK, q.TimeOfDay)
	assert.Equal(t, pkg.TIME_SAVER, q.Mode)
	assert.InDelta(t, 44, q.FuelPricePerLiter, 1e-9)
	assert.InDelta(t, 38.4417, q.Destination.Lat, 1e-9)
	assert.Equal(t, pkg.TIME_SAVER, summary.Mode)
}

func TestComputeRouteDefaults(t *testing.T) {
	eng := &recordingEngine{}
	rs := NewRoutingService(zap.NewNop(), eng)

	_, err := rs.ComputeRoute(params("Fiat Egea 1.3 Multijet"))
	require.NoError(t, err)
	assert.Equal(t, pkg.OFFPEAK, eng.queries[0].TimeOfDay)
	assert.Equal(t, pkg.BALANCED, eng.queries[0].Mode)
}

func TestComputeRouteInlineSpecWins(t *testing.T) {
	eng := &recordingEngine{}
	rs := NewRoutingService(zap.NewNop(), eng)

	p := params("no such vehicle")
	p.VehicleSpec = &vehicle.Spec{Name: "tractor", HP: 75, TorqueNm: 300, WeightKg: 3500,
		FuelConsumptionCity: 12, FuelType: "diesel"}
	_, err := rs.ComputeRoute(p)
	require.NoError(t, err)
	assert.Equal(t, "tractor", eng.queries[0].Vehicle.Name)
}

func TestComputeRouteInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *RouteParams)
		want   error
	}{
		{"unknown vehicle", func(p *RouteParams) { p.Vehicle = "Batmobile" }, engine.ErrUnknownVehicle},
		{"unknown mode", func(p *RouteParams) { p.Mode = "scenic" }, engine.ErrInvalidMode},
		{"unknown time of day", func(p *RouteParams) { p.TimeOfDay = "midnight" }, engine.ErrInvalidTimeOfDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &recordingEngine{}
			rs := NewRoutingService(zap.NewNop(), eng)

			p := params("Fiat Egea 1.3 Multijet")
			tt.modify(&p)
			_, err := rs.ComputeRoute(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
			assert.Empty(t, eng.queries)
		})
	}
}

func TestCompareRoutesIgnoresMode(t *testing.T) {
	eng := &recordingEngine{}
	rs := NewRoutingService(zap.NewNop(), eng)

	p := params("Fiat Egea 1.3 Multijet")
	p.Mode = "not even a mode"
	_, err := rs.CompareRoutes(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, eng.queries, 1)
}

func TestBatchRoutesKeepsOrder(t *testing.T) {
	eng := &recordingEngine{}
	rs := NewRoutingService(zap.NewNop(), eng)

	items := rs.BatchRoutes([]RouteParams{
		params("Fiat Egea 1.3 Multijet"),
		params("Batmobile"),
		params("Renault Clio 1.0 TCe"),
	})
	require.Len(t, items, 3)

	require.NoError(t, items[0].Err)
	assert.Equal(t, "Fiat Egea 1.3 Multijet", items[0].Summary.Vehicle)
	assert.True(t, errors.Is(items[1].Err, engine.ErrUnknownVehicle))
	assert.Nil(t, items[1].Summary)
	assert.Len(t, eng.queries, 2)
}
