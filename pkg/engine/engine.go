package engine

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/concurrent"
	"github.com/lintang-b-s/Slopex/pkg/costfunction"
	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/engine/locator"
	"github.com/lintang-b-s/Slopex/pkg/engine/routing"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/spatialindex"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrLocateFailure    = locator.ErrLocateFailure
	ErrInvalidVehicle   = vehicle.ErrInvalidVehicle
	ErrSameNode         = errors.New("origin and destination resolve to the same road node")
	ErrInvalidTimeOfDay = errors.New("time of day must be peak or offpeak")
	ErrInvalidMode      = errors.New("mode must be power_optimized, fuel_saver, time_saver or balanced")
	ErrUnknownVehicle   = errors.New("vehicle is not in the catalog")
	ErrInvalidCoord     = errors.New("coordinate out of range")
)

type RouteQuery struct {
	Origin            geo.Coordinate
	Destination       geo.Coordinate
	Vehicle           vehicle.Spec
	TimeOfDay         pkg.TimeOfDay
	Mode              pkg.OptimizationMode
	FuelPricePerLiter float64 // 0 means the configured price of the vehicle's fuel type
}

// BatchResult. outcome of one query of FindRoutes
type BatchResult struct {
	Summary *routing.RouteSummary
	Err     error
}

// Engine. locate -> search -> aggregate behind FindRoute. the graph is shared read-only by every query.
type Engine struct {
	routingEngine   *routing.RoutingEngine
	locator         *locator.NodeLocator
	capabilityCache *lru.Cache[vehicle.Spec, vehicle.Capability]
	components      datastructure.ComponentStats
	config          Config
	logger          *zap.Logger
}

func NewEngine(config Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Reading road network from ", zap.String("graphPath", config.GraphPath))
	graph, err := datastructure.ReadGraph(config.GraphPath, datastructure.WithDirectionExpansion(config.DirectionExpansion))
	if err != nil {
		return nil, err
	}
	logger.Info("Road network loaded",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("dropped_edges", graph.DroppedEdges()))
	if graph.DroppedEdges() > 0 {
		logger.Warn("edges referencing unknown nodes were excluded", zap.Int("dropped_edges", graph.DroppedEdges()))
	}

	return NewEngineWithGraph(graph, config, logger)
}

func NewEngineWithGraph(graph *datastructure.Graph, config Config, logger *zap.Logger) (*Engine, error) {
	rt := spatialindex.NewRtree()
	rt.Build(graph, logger)

	cacheSize := config.CapabilityCacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultConfig().CapabilityCacheSize
	}
	capabilityCache, err := lru.New[vehicle.Spec, vehicle.Capability](cacheSize)
	if err != nil {
		return nil, err
	}

	components := graph.RunKosaraju()
	logger.Info("strongly connected components",
		zap.Int("components", components.Count),
		zap.Int("largest_component_size", components.LargestSize))

	costFunction := costfunction.NewSlopeCostFunction(graph, config.Cost)
	return &Engine{
		routingEngine:   routing.NewRoutingEngine(graph, costFunction, config.Search, logger),
		locator:         locator.NewNodeLocator(graph, rt, config.SearchRadius, logger),
		capabilityCache: capabilityCache,
		components:      components,
		config:          config,
		logger:          logger,
	}, nil
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.routingEngine.GetGraph()
}

func (e *Engine) GetLocator() *locator.NodeLocator {
	return e.locator
}

func (e *Engine) GetConfig() Config {
	return e.config
}

func (e *Engine) GetComponents() datastructure.ComponentStats {
	return e.components
}

// Capability. vehicle capability of spec, memoized per spec.
func (e *Engine) Capability(spec vehicle.Spec) (vehicle.Capability, error) {
	if vc, ok := e.capabilityCache.Get(spec); ok {
		return vc, nil
	}
	vc, err := vehicle.NewCapability(spec)
	if err != nil {
		return vehicle.Capability{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid vehicle %q", spec.Name)
	}
	e.capabilityCache.Add(spec, vc)
	return vc, nil
}

func (e *Engine) fuelPrice(q RouteQuery, vc vehicle.Capability) float64 {
	if q.FuelPricePerLiter > 0 {
		return q.FuelPricePerLiter
	}
	return e.config.FuelPrices.Get(vc.GetFuelType())
}

func (e *Engine) locate(coord geo.Coordinate, name string) (datastructure.Index, error) {
	if !coord.IsValid() {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(ErrInvalidCoord, util.ErrBadParamInput,
			"%s (%f, %f)", name, coord.Lat, coord.Lon)
	}
	v, err := e.locator.Locate(coord)
	if err != nil {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(err, util.ErrNotFound,
			"%s (%f, %f) is more than %.0f m away from the road network", name, coord.Lat, coord.Lon,
			e.locator.GetSearchRadius())
	}
	return v, nil
}

// FindRoute. locate failure, invalid vehicle & same node are returned as errors before any search runs.
// a search that finds no meeting point is not an error, the summary carries the route_not_found marker.
func (e *Engine) FindRoute(q RouteQuery) (*routing.RouteSummary, error) {
	s, err := e.locate(q.Origin, "origin")
	if err != nil {
		return nil, err
	}
	t, err := e.locate(q.Destination, "destination")
	if err != nil {
		return nil, err
	}
	if s == t {
		return nil, util.WrapErrorf(ErrSameNode, util.ErrBadParamInput, "node %s",
			e.GetGraph().GetVertex(s).GetID())
	}

	vc, err := e.Capability(q.Vehicle)
	if err != nil {
		return nil, err
	}
	price := e.fuelPrice(q, vc)

	search := e.routingEngine.NewSearch(t, vc, q.TimeOfDay, q.Mode, price)
	path, found := search.ShortestPathSearch(s, t)
	stats := search.GetStats()

	var summary *routing.RouteSummary
	if !found {
		e.logger.Warn("route not found",
			zap.String("origin_node", e.GetGraph().GetVertex(s).GetID()),
			zap.String("destination_node", e.GetGraph().GetVertex(t).GetID()),
			zap.String("mode", q.Mode.String()),
			zap.Int("iterations", stats.Iterations),
			zap.Bool("same_component", e.components.ComponentOf[s] == e.components.ComponentOf[t]),
			zap.Bool("origin_in_largest_component", e.components.InLargestComponent(s)),
			zap.Bool("destination_in_largest_component", e.components.InLargestComponent(t)))
		summary = e.routingEngine.GetAggregator().NotFoundSummary(s, q.TimeOfDay)
		summary.Vehicle = vc.GetName()
	} else {
		summary = e.routingEngine.GetAggregator().Summarize(path, vc, q.TimeOfDay, price)
	}
	summary.Mode = q.Mode
	summary.Stats = &stats
	return summary, nil
}

// CompareRoutes. FindRoute for every optimization mode concurrently, results in pkg.AllOptimizationModes order.
func (e *Engine) CompareRoutes(ctx context.Context, q RouteQuery) ([]*routing.RouteSummary, error) {
	summaries := make([]*routing.RouteSummary, len(pkg.AllOptimizationModes))
	g, ctx := errgroup.WithContext(ctx)
	for i, mode := range pkg.AllOptimizationModes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mq := q
			mq.Mode = mode
			summary, err := e.FindRoute(mq)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindRoutes. independent queries on the batch worker pool, results keep the query order.
func (e *Engine) FindRoutes(queries []RouteQuery) []BatchResult {
	return concurrent.Map(e.config.BatchWorkers, queries, func(q RouteQuery) BatchResult {
		summary, err := e.FindRoute(q)
		return BatchResult{Summary: summary, Err: err}
	})
}
