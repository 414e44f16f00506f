package spatialindex

import (
	"github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. point index of graph vertices, keyed by (lon, lat)
type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. inserts every vertex of the graph as a degenerate box.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetIndex())
	})
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. vertices whose haversine distance to (qLat, qLon) is at most radius (km).
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	minLat, minLon, maxLat, maxLon := geo.BoundingBoxAround(qLat, qLon, radius)

	results := make([]datastructure.Index, 0, 16)
	iter := func(min, max [2]float64, data datastructure.Index) bool {
		if geo.CalculateHaversineDistance(qLat, qLon, min[1], min[0]) <= radius {
			results = append(results, data)
		}
		return true
	}

	if minLon > maxLon {
		// the box crosses the antimeridian: search both sides of it
		rt.tr.Search([2]float64{minLon, minLat}, [2]float64{180, maxLat}, iter)
		rt.tr.Search([2]float64{-180, minLat}, [2]float64{maxLon, maxLat}, iter)
		return results
	}
	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, iter)
	return results
}
