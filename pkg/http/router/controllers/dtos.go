package controllers

import (
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/http/usecases"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"github.com/paulmach/orb/geojson"
)

const (
	formatJSON    = "json"
	formatGeoJSON = "geojson"
)

type routeRequest struct {
	OriginLat         float64       `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon         float64       `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat    float64       `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon    float64       `json:"destination_lon" validate:"min=-180,max=180"`
	Vehicle           string        `json:"vehicle" validate:"required_without=VehicleSpec"`
	VehicleSpec       *vehicle.Spec `json:"vehicle_spec,omitempty"`
	TimeOfDay         string        `json:"time_of_day" validate:"omitempty,oneof=peak offpeak off_peak"`
	Mode              string        `json:"mode" validate:"omitempty,oneof=power_optimized fuel_saver time_saver balanced"`
	FuelPricePerLiter float64       `json:"fuel_price_per_liter" validate:"gte=0"`
	Format            string        `json:"format" validate:"omitempty,oneof=json geojson"`
}

func (r routeRequest) toParams() usecases.RouteParams {
	return usecases.RouteParams{
		OriginLat:         r.OriginLat,
		OriginLon:         r.OriginLon,
		DestinationLat:    r.DestinationLat,
		DestinationLon:    r.DestinationLon,
		Vehicle:           r.Vehicle,
		VehicleSpec:       r.VehicleSpec,
		TimeOfDay:         r.TimeOfDay,
		Mode:              r.Mode,
		FuelPricePerLiter: r.FuelPricePerLiter,
	}
}

type batchRouteRequest struct {
	Requests []routeRequest `json:"requests" validate:"required,min=1,max=100,dive"`
}

type routeResponse struct {
	Summary  *routing.RouteSummary      `json:"summary"`
	Path     string                     `json:"path"` // encoded polyline
	Bbox     []float64                  `json:"bbox,omitempty"`
	Features *geojson.FeatureCollection `json:"geojson,omitempty"`
}

// NewRouteResponse. geojson carries the whole route plus one LineString per segment when format is geojson.
func NewRouteResponse(summary *routing.RouteSummary, format string) routeResponse {
	resp := routeResponse{
		Summary: summary,
		Path:    geo.PolylineFromCoords(summary.Coordinates),
		Bbox:    geo.LineBound(summary.Coordinates),
	}
	if format == formatGeoJSON {
		resp.Features = newRouteFeatureCollection(summary)
	}
	return resp
}

func newRouteFeatureCollection(summary *routing.RouteSummary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(summary.Coordinates) < 2 {
		return fc
	}

	fc.Append(geo.NewLineFeature(summary.Coordinates, map[string]interface{}{
		"mode":           summary.Mode.String(),
		"total_distance": summary.TotalDistance,
		"total_fuel":     summary.TotalFuel,
		"total_time":     summary.TotalTimeMinutes,
		"feasible":       summary.Feasible,
	}))

	for i, seg := range summary.Segments {
		if i+1 >= len(summary.Coordinates) {
			break
		}
		fc.Append(geo.NewLineFeature(summary.Coordinates[i:i+2], map[string]interface{}{
			"from":          seg.From,
			"to":            seg.To,
			"slope_percent": seg.SlopePercent,
			"category":      seg.Category.String(),
			"difficulty":    seg.Difficulty.String(),
			"passable":      seg.Passable,
		}))
	}
	return fc
}

type compareRoutesResponse struct {
	Routes []routeResponse `json:"routes"`
}

func NewCompareRoutesResponse(summaries []*routing.RouteSummary, format string) compareRoutesResponse {
	routes := make([]routeResponse, 0, len(summaries))
	for _, s := range summaries {
		routes = append(routes, NewRouteResponse(s, format))
	}
	return compareRoutesResponse{Routes: routes}
}

type batchRouteItem struct {
	Route *routeResponse `json:"route,omitempty"`
	Error *errorBody     `json:"error,omitempty"`
}

type vehicleResponse struct {
	Spec       vehicle.Spec        `json:"spec"`
	Capability *vehicle.Capability `json:"capability,omitempty"`
}

func NewVehicleResponse(spec vehicle.Spec) vehicleResponse {
	resp := vehicleResponse{Spec: spec}
	if vc, err := vehicle.NewCapability(spec); err == nil {
		resp.Capability = &vc
	}
	return resp
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
