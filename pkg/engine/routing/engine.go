package routing

import (
	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/costfunction"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	met "github.com/lintang-b-s/Slopex/pkg/metrics"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
	"go.uber.org/zap"
)

type SearchConfig struct {
	MaxIterations       int     // pops across both directions
	BackwardRelaxFactor float64 // multiplies vehicle slope thresholds of the backward search
	DestinationPenalty  float64 // multiplies the forced cost of an impassable edge incident to the destination
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxIterations:       DEFAULT_MAX_ITERATIONS,
		BackwardRelaxFactor: DEFAULT_BACKWARD_RELAX_FACTOR,
		DestinationPenalty:  DEFAULT_DESTINATION_PENALTY,
	}
}

// RoutingEngine. shared, read-only state of every search: graph, cost function & search limits.
type RoutingEngine struct {
	graph        *da.Graph
	costFunction *costfunction.SlopeCostFunction
	aggregator   *RouteAggregator
	config       SearchConfig
	logger       *zap.Logger
}

func NewRoutingEngine(graph *da.Graph, costFunction *costfunction.SlopeCostFunction, config SearchConfig,
	logger *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		graph:        graph,
		costFunction: costFunction,
		aggregator:   NewRouteAggregator(graph, costFunction),
		config:       config,
		logger:       logger,
	}
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) GetCostFunction() *costfunction.SlopeCostFunction {
	return re.costFunction
}

func (re *RoutingEngine) GetAggregator() *RouteAggregator {
	return re.aggregator
}

func (re *RoutingEngine) GetConfig() SearchConfig {
	return re.config
}

// NewSearch. fresh search state for one query towards target: pure distance forward,
// relaxed slope cost backward.
func (re *RoutingEngine) NewSearch(target da.Index, vc vehicle.Capability, tod pkg.TimeOfDay,
	mode pkg.OptimizationMode, fuelPricePerLiter float64) *BidirectionalSearch {
	forward := met.NewDistanceMetric()
	backward := met.NewSlopeMetric(re.costFunction, vc, tod, mode, fuelPricePerLiter, target,
		re.config.BackwardRelaxFactor, re.config.DestinationPenalty)
	return NewBidirectionalSearch(re, forward, backward)
}

func (re *RoutingEngine) GetHaversineDistanceFromUtoV(u, v da.Index) float64 {
	return re.graph.GetHaversineDistanceFromUtoV(u, v)
}
