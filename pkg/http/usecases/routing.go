package usecases

import (
	"context"

	"github.com/lintang-b-s/Slopex/pkg/engine"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"go.uber.org/zap"
)

// RouteParams. route request as received from a client, before the vehicle, time of day & mode are resolved.
type RouteParams struct {
	OriginLat         float64
	OriginLon         float64
	DestinationLat    float64
	DestinationLon    float64
	Vehicle           string        // catalog name, ignored when VehicleSpec is set
	VehicleSpec       *vehicle.Spec // inline spec
	TimeOfDay         string
	Mode              string
	FuelPricePerLiter float64
}

type BatchItem struct {
	Summary *routing.RouteSummary
	Err     error
}

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
	}
}

func (rs *RoutingService) ComputeRoute(params RouteParams) (*routing.RouteSummary, error) {
	q, err := rs.toQuery(params)
	if err != nil {
		return nil, err
	}
	return rs.engine.FindRoute(q)
}

// CompareRoutes. one summary per optimization mode, params.Mode is ignored.
func (rs *RoutingService) CompareRoutes(ctx context.Context, params RouteParams) ([]*routing.RouteSummary, error) {
	params.Mode = ""
	q, err := rs.toQuery(params)
	if err != nil {
		return nil, err
	}
	return rs.engine.CompareRoutes(ctx, q)
}

// BatchRoutes. a param that fails to resolve only fails its own item.
func (rs *RoutingService) BatchRoutes(params []RouteParams) []BatchItem {
	items := make([]BatchItem, len(params))
	queries := make([]engine.RouteQuery, 0, len(params))
	queryPos := make([]int, 0, len(params))
	for i, p := range params {
		q, err := rs.toQuery(p)
		if err != nil {
			items[i].Err = err
			continue
		}
		queries = append(queries, q)
		queryPos = append(queryPos, i)
	}

	results := rs.engine.FindRoutes(queries)
	for j, res := range results {
		items[queryPos[j]] = BatchItem{Summary: res.Summary, Err: res.Err}
	}

	rs.log.Debug("batch routes done", zap.Int("requests", len(params)), zap.Int("searched", len(queries)))
	return items
}

func (rs *RoutingService) Vehicles() []vehicle.Spec {
	return vehicle.CatalogSpecs()
}
