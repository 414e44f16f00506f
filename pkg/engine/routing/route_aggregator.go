package routing

import (
	"math"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/costfunction"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/guidance"
	"github.com/lintang-b-s/Slopex/pkg/vehicle"
)

// RouteAggregator. turns a vertex path into a RouteSummary. every edge is re-evaluated with the
// unrelaxed capability in balanced mode, the search's own accounting is not trusted.
type RouteAggregator struct {
	graph        *da.Graph
	costFunction *costfunction.SlopeCostFunction
}

func NewRouteAggregator(graph *da.Graph, costFunction *costfunction.SlopeCostFunction) *RouteAggregator {
	return &RouteAggregator{
		graph:        graph,
		costFunction: costFunction,
	}
}

func (ra *RouteAggregator) newSummary(path []da.Index, tod pkg.TimeOfDay) *RouteSummary {
	ids := make([]string, 0, len(path))
	coords := make([]geo.Coordinate, 0, len(path))
	for _, v := range path {
		vertex := ra.graph.GetVertex(v)
		ids = append(ids, vertex.GetID())
		coords = append(coords, vertex.GetCoordinate())
	}
	return &RouteSummary{
		Path:        ids,
		Coordinates: coords,
		Segments:    []Segment{},
		Directions:  []guidance.DrivingDirection{},
		Mode:        pkg.BALANCED,
		TimeOfDay:   tod,
	}
}

// NotFoundSummary. degenerate summary of a failed search: path [start], zero totals.
func (ra *RouteAggregator) NotFoundSummary(start da.Index, tod pkg.TimeOfDay) *RouteSummary {
	rs := ra.newSummary([]da.Index{start}, tod)
	rs.Error = ERR_ROUTE_NOT_FOUND
	return rs
}

// Summarize. a path with fewer than two vertices yields zero totals and an error marker.
func (ra *RouteAggregator) Summarize(path []da.Index, vc vehicle.Capability, tod pkg.TimeOfDay,
	fuelPricePerLiter float64) *RouteSummary {

	rs := ra.newSummary(path, tod)
	if len(path) < 2 {
		rs.Error = ERR_PATH_TOO_SHORT
		return rs
	}

	rs.Segments = make([]Segment, 0, len(path)-1)
	directions := guidance.NewDirectionBuilder(ra.graph)
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		eId, ok := ra.graph.FindEdge(u, v)
		if !ok {
			rs.Error = ERR_MISSING_EDGE
			continue
		}
		e := ra.graph.GetEdge(eId)
		res := ra.costFunction.EdgeCost(e, vc, tod, pkg.BALANCED, fuelPricePerLiter)
		directions.AddEdge(eId, res.TimeMinutes, res.Slope.SlopePercent)

		rs.Segments = append(rs.Segments, Segment{
			From:            ra.graph.GetVertex(u).GetID(),
			To:              ra.graph.GetVertex(v).GetID(),
			Distance:        res.Distance,
			SlopePercent:    res.Slope.SlopePercent,
			Category:        res.Slope.Category,
			Difficulty:      res.Tier,
			ElevationChange: res.Slope.ElevationChange,
			FromElevation:   res.Slope.FromElevation,
			ToElevation:     res.Slope.ToElevation,
			Fuel:            res.Fuel,
			FuelCost:        res.FuelCost,
			TimeMinutes:     res.TimeMinutes,
			Passable:        res.Passable,
			StreetName:      e.GetStreetName(),
			RoadType:        e.GetRoadType(),
			Lanes:           e.GetLanes(),
			Oneway:          e.GetDirection() != pkg.BIDIRECTIONAL,
		})

		rs.TotalDistance += res.Distance
		rs.TotalFuel += res.Fuel
		rs.TotalFuelCost += res.FuelCost
		rs.TotalTimeMinutes += res.TimeMinutes
		rs.MaxSlope = math.Max(rs.MaxSlope, math.Abs(res.Slope.SlopePercent))
		if res.Slope.ElevationChange > 0 {
			rs.ElevationGain += res.Slope.ElevationChange
		} else {
			rs.ElevationLoss -= res.Slope.ElevationChange
		}
		if res.Tier.IsCritical() {
			rs.CriticalSections++
		}
		if !res.Passable {
			rs.ImpassableSegments++
		}
	}

	rs.Directions = directions.Finish()

	rs.CO2Kg = rs.TotalFuel * vc.GetFuelType().EmissionFactor()
	if rs.TotalDistance > 0 {
		rs.CO2PerKmG = rs.CO2Kg * 1000 / rs.GetDistanceKm()
	}
	rs.Feasible = rs.ImpassableSegments == 0 && rs.Error == ""
	rs.Vehicle = vc.GetName()
	return rs
}
