package usecases

import (
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
)

func (rs *RoutingService) toQuery(params RouteParams) (engine.RouteQuery, error) {
	spec, err := resolveVehicle(params)
	if err != nil {
		return engine.RouteQuery{}, err
	}

	tod, err := pkg.ParseTimeOfDay(params.TimeOfDay)
	if err != nil {
		return engine.RouteQuery{}, util.WrapErrorf(engine.ErrInvalidTimeOfDay, util.ErrBadParamInput, "%q", params.TimeOfDay)
	}

	mode, err := pkg.ParseOptimizationMode(params.Mode)
	if err != nil {
		return engine.RouteQuery{}, util.WrapErrorf(engine.ErrInvalidMode, util.ErrBadParamInput, "%q", params.Mode)
	}

	return engine.RouteQuery{
		Origin:            geo.NewCoordinate(params.OriginLat, params.OriginLon),
		Destination:       geo.NewCoordinate(params.DestinationLat, params.DestinationLon),
		Vehicle:           spec,
		TimeOfDay:         tod,
		Mode:              mode,
		FuelPricePerLiter: params.FuelPricePerLiter,
	}, nil
}

func resolveVehicle(params RouteParams) (vehicle.Spec, error) {
	if params.VehicleSpec != nil {
		return *params.VehicleSpec, nil
	}
	spec, ok := vehicle.LookupSpec(params.Vehicle)
	if !ok {
		return vehicle.Spec{}, util.WrapErrorf(engine.ErrUnknownVehicle, util.ErrBadParamInput, "%q", params.Vehicle)
	}
	return spec, nil
}
