package locator

import (
	"errors"
	"testing"

	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	"github.com/lintang-b-s/Slopex/pkg/geo"
	"github.com/lintang-b-s/Slopex/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	originLat = 41.0082
	originLon = 28.9784
)

func addNodeAt(network *da.RoadNetwork, id string, bearing, distKm float64) {
	lat, lon := geo.GetDestinationPoint(originLat, originLon, bearing, distKm)
	network.AddNode(id, lat, lon, nil)
}

func newLocator(t *testing.T, network *da.RoadNetwork) (*NodeLocator, *da.Graph) {
	t.Helper()
	g := da.NewGraph(network)
	rt := spatialindex.NewRtree()
	rt.Build(g, zap.NewNop())
	return NewNodeLocator(g, rt, 200, zap.NewNop()), g
}

func TestLocatePrefersJunction(t *testing.T) {
	network := da.NewRoadNetwork()
	addNodeAt(network, "stub", 0, 0.01)       // 10 m away, dead end
	addNodeAt(network, "junction", 90, 0.12)  // 120 m away, 3 bidirectional roads
	addNodeAt(network, "j1", 90, 0.4)
	addNodeAt(network, "j2", 90, 0.5)
	addNodeAt(network, "j3", 180, 0.4)
	addNodeAt(network, "s1", 0, 0.6)

	network.AddEdge(da.RawEdge{From: "stub", To: "s1", Direction: "oneway"})
	for _, other := range []string{"j1", "j2", "j3"} {
		network.AddEdge(da.RawEdge{From: "junction", To: other, Direction: "bidirectional"})
	}

	nl, g := newLocator(t, network)
	v, err := nl.Locate(geo.NewCoordinate(originLat, originLon))
	require.NoError(t, err)
	assert.Equal(t, "junction", g.GetVertex(v).GetID())

	candidates := nl.Candidates(geo.NewCoordinate(originLat, originLon))
	require.Len(t, candidates, 2)
	assert.Equal(t, 6, candidates[0].Connectivity)
	assert.InDelta(t, 600-12, candidates[0].Score, 0.01)
	assert.InDelta(t, 100-1, candidates[1].Score, 0.01)
}

func TestLocateTieBreak(t *testing.T) {
	network := da.NewRoadNetwork()
	// both isolated, equal connectivity. the closer one wins
	addNodeAt(network, "far", 0, 0.15)
	addNodeAt(network, "near", 180, 0.05)

	nl, g := newLocator(t, network)
	v, err := nl.Locate(geo.NewCoordinate(originLat, originLon))
	require.NoError(t, err)
	assert.Equal(t, "near", g.GetVertex(v).GetID())
}

func TestLocateFailure(t *testing.T) {
	network := da.NewRoadNetwork()
	addNodeAt(network, "a", 0, 0.5)
	addNodeAt(network, "b", 90, 0.5)
	network.AddEdge(da.RawEdge{From: "a", To: "b"})

	nl, _ := newLocator(t, network)

	t.Run("inside coverage, empty radius", func(t *testing.T) {
		lat, lon := geo.GetDestinationPoint(originLat, originLon, 45, 0.3)
		_, err := nl.Locate(geo.NewCoordinate(lat, lon))
		assert.True(t, errors.Is(err, ErrLocateFailure))
	})

	t.Run("far away from the network", func(t *testing.T) {
		_, err := nl.Locate(geo.NewCoordinate(-33.86, 151.2))
		assert.True(t, errors.Is(err, ErrLocateFailure))
	})

	t.Run("empty graph", func(t *testing.T) {
		empty, _ := newLocator(t, da.NewRoadNetwork())
		_, err := empty.Locate(geo.NewCoordinate(originLat, originLon))
		assert.True(t, errors.Is(err, ErrLocateFailure))
	})
}
