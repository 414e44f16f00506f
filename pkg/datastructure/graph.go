package datastructure

import (
	"math"
	"sort"

	"github.com/lintang-b-s/Slopex/pkg"
	"github.com/lintang-b-s/Slopex/pkg/geo"
)

// Index is a dense handle of a vertex/edge inside one Graph. it carries no meaning outside that graph.
type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

// Vertex is a road node. id is the opaque identifier given by the road-network builder.
type Vertex struct {
	id           string
	lat          float64
	lon          float64
	elevation    float64
	hasElevation bool
	index        Index
}

func NewVertex(id string, lat, lon float64, index Index) *Vertex {
	return &Vertex{id: id, lat: lat, lon: lon, index: index}
}

func NewVertexWithElevation(id string, lat, lon, elevation float64, index Index) *Vertex {
	return &Vertex{id: id, lat: lat, lon: lon, elevation: elevation, hasElevation: true, index: index}
}

func (v *Vertex) GetID() string {
	return v.id
}

func (v *Vertex) GetIndex() Index {
	return v.index
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

// GetElevation. second return value is false when the terrain service had no elevation for this node.
func (v *Vertex) GetElevation() (float64, bool) {
	return v.elevation, v.hasElevation
}

// Edge is a directed road segment tail -> head.
type Edge struct {
	edgeId     Index
	tail       Index
	head       Index
	dist       float64 // meter
	speedLimit float64 // km/h
	direction  pkg.RoadDirection
	roadType   string
	streetName string
	lanes      int
}

func NewEdge(edgeId, tail, head Index, dist, speedLimit float64, direction pkg.RoadDirection,
	roadType, streetName string, lanes int) *Edge {
	return &Edge{
		edgeId:     edgeId,
		tail:       tail,
		head:       head,
		dist:       dist,
		speedLimit: speedLimit,
		direction:  direction,
		roadType:   roadType,
		streetName: streetName,
		lanes:      lanes,
	}
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

// GetLength. edge length in meter
func (e *Edge) GetLength() float64 {
	return e.dist
}

// GetSpeedLimit. km/h, zero if unknown
func (e *Edge) GetSpeedLimit() float64 {
	return e.speedLimit
}

func (e *Edge) GetDirection() pkg.RoadDirection {
	return e.direction
}

func (e *Edge) GetRoadType() string {
	return e.roadType
}

func (e *Edge) GetStreetName() string {
	return e.streetName
}

func (e *Edge) GetLanes() int {
	return e.lanes
}

// Graph. read-only snapshot of the road network. safe to share between concurrent searches.
type Graph struct {
	vertices  []*Vertex
	edges     []*Edge
	vertexIds map[string]Index

	// adjacency, derived once in NewGraph
	outgoing [][]Index // vertex -> edge ids with tail == vertex
	incoming [][]Index // vertex -> edge ids with head == vertex

	droppedEdges int
	coverage     geo.Coverage
}

type graphOptions struct {
	expandDirections bool
}

type GraphOption func(*graphOptions)

// WithDirectionExpansion. if enabled (default), reverse_only edges are flipped and bidirectional edges get a reverse twin.
// if disabled every edge is used exactly as supplied (from -> to).
func WithDirectionExpansion(expand bool) GraphOption {
	return func(o *graphOptions) {
		o.expandDirections = expand
	}
}

// NewGraph. builds the graph and its outgoing/incoming indices from the node and edge collections.
// edges referencing unknown nodes are excluded.
func NewGraph(network *RoadNetwork, opts ...GraphOption) *Graph {
	options := graphOptions{expandDirections: true}
	for _, opt := range opts {
		opt(&options)
	}

	ids := make([]string, 0, len(network.Nodes))
	for id := range network.Nodes {
		ids = append(ids, id)
	}
	// map iteration order is random, sort so vertex indices are stable between runs
	sort.Strings(ids)

	g := &Graph{
		vertices:  make([]*Vertex, 0, len(ids)),
		edges:     make([]*Edge, 0, len(network.Edges)),
		vertexIds: make(map[string]Index, len(ids)),
	}

	coords := make([]geo.Coordinate, 0, len(ids))
	for i, id := range ids {
		raw := network.Nodes[id]
		var v *Vertex
		if raw.Elevation != nil {
			v = NewVertexWithElevation(id, raw.Position[0], raw.Position[1], *raw.Elevation, Index(i))
		} else {
			v = NewVertex(id, raw.Position[0], raw.Position[1], Index(i))
		}
		g.vertices = append(g.vertices, v)
		g.vertexIds[id] = Index(i)
		coords = append(coords, v.GetCoordinate())
	}
	g.coverage = geo.NewCoverage(coords)

	for _, re := range network.Edges {
		u, uOk := g.vertexIds[re.From]
		v, vOk := g.vertexIds[re.To]
		if !uOk || !vOk {
			g.droppedEdges++
			continue
		}

		dist := re.Distance
		if dist <= 0 {
			dist = geo.HaversineMeters(g.vertices[u].GetCoordinate(), g.vertices[v].GetCoordinate())
		}
		direction := pkg.GetRoadDirection(re.Direction)

		if !options.expandDirections {
			g.appendEdge(u, v, dist, direction, re)
			continue
		}

		switch direction {
		case pkg.ONEWAY:
			g.appendEdge(u, v, dist, direction, re)
		case pkg.REVERSE_ONLY:
			g.appendEdge(v, u, dist, direction, re)
		default:
			g.appendEdge(u, v, dist, direction, re)
			if u != v {
				g.appendEdge(v, u, dist, direction, re)
			}
		}
	}

	g.buildAdjacency()
	return g
}

func (g *Graph) appendEdge(tail, head Index, dist float64, direction pkg.RoadDirection, re RawEdge) {
	eid := Index(len(g.edges))
	g.edges = append(g.edges, NewEdge(eid, tail, head, dist, re.SpeedLimit, direction, re.RoadType,
		re.StreetName, re.Lanes))
}

func (g *Graph) buildAdjacency() {
	n := len(g.vertices)
	outDegree := make([]int, n)
	inDegree := make([]int, n)
	for _, e := range g.edges {
		outDegree[e.tail]++
		inDegree[e.head]++
	}

	g.outgoing = make([][]Index, n)
	g.incoming = make([][]Index, n)
	for v := 0; v < n; v++ {
		g.outgoing[v] = make([]Index, 0, outDegree[v])
		g.incoming[v] = make([]Index, 0, inDegree[v])
	}

	for _, e := range g.edges {
		g.outgoing[e.tail] = append(g.outgoing[e.tail], e.edgeId)
		g.incoming[e.head] = append(g.incoming[e.head], e.edgeId)
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

// DroppedEdges. number of input edges excluded because they referenced unknown nodes.
func (g *Graph) DroppedEdges() int {
	return g.droppedEdges
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

// GetVertexIndex. resolves an opaque node id into its vertex handle.
func (g *Graph) GetVertexIndex(id string) (Index, bool) {
	u, ok := g.vertexIds[id]
	return u, ok
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

// GetOutEdges. ids of edges leaving u. the returned slice must not be modified.
func (g *Graph) GetOutEdges(u Index) []Index {
	return g.outgoing[u]
}

// GetInEdges. ids of edges entering u. the returned slice must not be modified.
func (g *Graph) GetInEdges(u Index) []Index {
	return g.incoming[u]
}

func (g *Graph) GetOutDegree(u Index) int {
	return len(g.outgoing[u])
}

func (g *Graph) GetInDegree(u Index) int {
	return len(g.incoming[u])
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for _, eid := range g.outgoing[u] {
		handle(g.edges[eid])
	}
}

func (g *Graph) ForInEdgesOf(u Index, handle func(e *Edge)) {
	for _, eid := range g.incoming[u] {
		handle(g.edges[eid])
	}
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

// FindEdge. the shortest edge u -> v, parallel edges are resolved by length then by edge id.
func (g *Graph) FindEdge(u, v Index) (Index, bool) {
	best := INVALID_EDGE_ID
	for _, eid := range g.outgoing[u] {
		e := g.edges[eid]
		if e.head != v {
			continue
		}
		if best == INVALID_EDGE_ID || e.dist < g.edges[best].dist {
			best = eid
		}
	}
	return best, best != INVALID_EDGE_ID
}

// GetHaversineDistanceFromUtoV. great-circle distance between u and v in meter
func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	return geo.HaversineMeters(g.vertices[u].GetCoordinate(), g.vertices[v].GetCoordinate())
}

func (g *Graph) GetCoverage() geo.Coverage {
	return g.coverage
}
