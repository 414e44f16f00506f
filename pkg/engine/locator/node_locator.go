package locator

import (
	"errors"
	"sort"

	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/spatialindex"
	"go.uber.org/zap"
)

var ErrLocateFailure = errors.New("no road node within search radius")

const (
	connectivityWeight = 100.0
	distanceDivisor    = 10.0
)

// Candidate. a vertex near the query point with its ranking score
type Candidate struct {
	Vertex       da.Index
	Distance     float64 // meter
	Connectivity int     // out-degree + in-degree
	Score        float64
}

// NodeLocator. snaps a coordinate to a nearby graph vertex, preferring well connected junctions
// over isolated stubs at comparable distance.
type NodeLocator struct {
	graph        *da.Graph
	rtree        *spatialindex.Rtree
	searchRadius float64 // meter
	logger       *zap.Logger
}

func NewNodeLocator(graph *da.Graph, rtree *spatialindex.Rtree, searchRadius float64,
	logger *zap.Logger) *NodeLocator {
	return &NodeLocator{
		graph:        graph,
		rtree:        rtree,
		searchRadius: searchRadius,
		logger:       logger,
	}
}

func (nl *NodeLocator) GetSearchRadius() float64 {
	return nl.searchRadius
}

// Candidates. every vertex within the search radius, best first.
// score = (outDegree + inDegree) * 100 - distance / 10. ties: closer vertex first, then lower vertex index.
func (nl *NodeLocator) Candidates(coord geo.Coordinate) []Candidate {
	if !nl.graph.GetCoverage().Contains(coord, nl.searchRadius) {
		return []Candidate{}
	}

	vertices := nl.rtree.SearchWithinRadius(coord.Lat, coord.Lon, nl.searchRadius/1000)
	candidates := make([]Candidate, 0, len(vertices))
	for _, v := range vertices {
		vertex := nl.graph.GetVertex(v)
		dist := geo.HaversineMeters(coord, vertex.GetCoordinate())
		if dist > nl.searchRadius {
			continue
		}
		connectivity := nl.graph.GetOutDegree(v) + nl.graph.GetInDegree(v)
		candidates = append(candidates, Candidate{
			Vertex:       v,
			Distance:     dist,
			Connectivity: connectivity,
			Score:        float64(connectivity)*connectivityWeight - dist/distanceDivisor,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Vertex < b.Vertex
	})
	return candidates
}

// Locate. top scoring vertex near coord, ErrLocateFailure if the radius holds no vertex.
func (nl *NodeLocator) Locate(coord geo.Coordinate) (da.Index, error) {
	candidates := nl.Candidates(coord)
	if len(candidates) == 0 {
		return da.INVALID_VERTEX_ID, ErrLocateFailure
	}
	best := candidates[0]
	nl.logger.Debug("located node",
		zap.String("node_id", nl.graph.GetVertex(best.Vertex).GetID()),
		zap.Float64("distance_m", best.Distance),
		zap.Int("connectivity", best.Connectivity),
		zap.Int("candidates", len(candidates)))
	return best.Vertex, nil
}
