package routing

import (
	"github.com/lintang-b-s/Slopex/pkg"
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
	met "github.com/lintang-b-s/Slopex/pkg/metrics"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"go.uber.org/zap"
)

type SearchStats struct {
	Iterations      int      `json:"iterations"`
	ForwardSettled  int      `json:"forward_settled"`
	BackwardSettled int      `json:"backward_settled"`
	ForwardLength   int      `json:"forward_length"`  // nodes of the forward subpath, meeting point included
	BackwardLength  int      `json:"backward_length"` // nodes of the backward subpath, meeting point included
	MeetingPoint    da.Index `json:"-"`
	Found           bool     `json:"found"`
}

// BidirectionalSearch. two best-first searches, forward over outgoing edges from s and backward over
// incoming edges from t, each ordered by dist + haversine(v, other root)/100.
// the first vertex settled by both directions is the meeting point. not guaranteed to be cost-optimal.
// a BidirectionalSearch is single use, create one per query.
type BidirectionalSearch struct {
	engine         *RoutingEngine
	forwardMetric  met.Metric
	backwardMetric met.Metric

	forwardInfo  map[da.Index]*VertexInfo
	backwardInfo map[da.Index]*VertexInfo

	forwardPq  *da.MinHeap[da.Index]
	backwardPq *da.MinHeap[da.Index]

	maxIterations int
	stats         SearchStats
}

func NewBidirectionalSearch(engine *RoutingEngine, forwardMetric, backwardMetric met.Metric) *BidirectionalSearch {
	return &BidirectionalSearch{
		engine:         engine,
		forwardMetric:  forwardMetric,
		backwardMetric: backwardMetric,
		forwardInfo:    make(map[da.Index]*VertexInfo),
		backwardInfo:   make(map[da.Index]*VertexInfo),
		forwardPq:      da.NewFourAryHeap[da.Index](),
		backwardPq:     da.NewFourAryHeap[da.Index](),
		maxIterations:  engine.config.MaxIterations,
		stats:          SearchStats{MeetingPoint: da.INVALID_VERTEX_ID},
	}
}

func (bs *BidirectionalSearch) GetStats() SearchStats {
	return bs.stats
}

func (bs *BidirectionalSearch) heuristic(u, root da.Index) float64 {
	return bs.engine.GetHaversineDistanceFromUtoV(u, root) / HEURISTIC_DIVISOR
}

// ShortestPathSearch. ordered vertices s ... t, false if the iteration budget runs out or the frontiers never meet.
func (bs *BidirectionalSearch) ShortestPathSearch(s, t da.Index) ([]da.Index, bool) {
	if s == t {
		bs.stats.Found = true
		bs.stats.MeetingPoint = s
		bs.stats.ForwardLength, bs.stats.BackwardLength = 1, 1
		return []da.Index{s}, true
	}

	sNode := da.NewPriorityQueueNode(bs.heuristic(s, t), s)
	bs.forwardInfo[s] = NewVertexInfo(0, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), sNode)
	bs.forwardPq.Insert(sNode)

	tNode := da.NewPriorityQueueNode(bs.heuristic(t, s), t)
	bs.backwardInfo[t] = NewVertexInfo(0, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), tNode)
	bs.backwardPq.Insert(tNode)

	meet := da.INVALID_VERTEX_ID
	forwardTurn := true
	for !bs.forwardPq.IsEmpty() || !bs.backwardPq.IsEmpty() {
		if bs.stats.Iterations >= bs.maxIterations {
			break
		}
		bs.stats.Iterations++

		// forward ranks are meters and backward ranks are slope cost, so the two minima are not
		// comparable. the directions alternate, an exhausted side hands every step to the other.
		stepForward := forwardTurn
		if bs.forwardPq.IsEmpty() {
			stepForward = false
		} else if bs.backwardPq.IsEmpty() {
			stepForward = true
		}
		forwardTurn = !forwardTurn

		var found bool
		if stepForward {
			meet, found = bs.forwardSearch(t)
		} else {
			meet, found = bs.backwardSearch(s)
		}
		if found {
			break
		}
	}

	if meet == da.INVALID_VERTEX_ID {
		bs.engine.logger.Debug("bidirectional search found no meeting point",
			zap.Int("iterations", bs.stats.Iterations),
			zap.Int("forward_settled", bs.stats.ForwardSettled),
			zap.Int("backward_settled", bs.stats.BackwardSettled))
		return []da.Index{}, false
	}

	path := bs.mergePath(meet)
	bs.stats.Found = true
	bs.stats.MeetingPoint = meet
	bs.engine.logger.Debug("bidirectional search finished",
		zap.Int("iterations", bs.stats.Iterations),
		zap.Int("forward_settled", bs.stats.ForwardSettled),
		zap.Int("backward_settled", bs.stats.BackwardSettled),
		zap.Int("path_length", len(path)))
	return path, true
}

// forwardSearch. settles the forward minimum and relaxes its outgoing edges.
func (bs *BidirectionalSearch) forwardSearch(t da.Index) (da.Index, bool) {
	queryKey, err := bs.forwardPq.ExtractMin()
	if err != nil {
		return da.INVALID_VERTEX_ID, false
	}
	u := queryKey.GetItem()
	uInfo := bs.forwardInfo[u]
	uInfo.Settle()
	bs.stats.ForwardSettled++

	if other, ok := bs.backwardInfo[u]; ok && other.IsSettled() {
		return u, true
	}

	bs.engine.graph.ForOutEdgesOf(u, func(e *da.Edge) {
		bs.relax(u, e.GetHead(), e, uInfo, bs.forwardMetric, bs.forwardInfo, bs.forwardPq, t)
	})
	return da.INVALID_VERTEX_ID, false
}

// backwardSearch. settles the backward minimum and relaxes its incoming edges.
func (bs *BidirectionalSearch) backwardSearch(s da.Index) (da.Index, bool) {
	queryKey, err := bs.backwardPq.ExtractMin()
	if err != nil {
		return da.INVALID_VERTEX_ID, false
	}
	u := queryKey.GetItem()
	uInfo := bs.backwardInfo[u]
	uInfo.Settle()
	bs.stats.BackwardSettled++

	if other, ok := bs.forwardInfo[u]; ok && other.IsSettled() {
		return u, true
	}

	bs.engine.graph.ForInEdgesOf(u, func(e *da.Edge) {
		bs.relax(u, e.GetTail(), e, uInfo, bs.backwardMetric, bs.backwardInfo, bs.backwardPq, s)
	})
	return da.INVALID_VERTEX_ID, false
}

func (bs *BidirectionalSearch) relax(u, v da.Index, e *da.Edge, uInfo *VertexInfo, metric met.Metric,
	info map[da.Index]*VertexInfo, pq *da.MinHeap[da.Index], root da.Index) {

	edgeWeight := metric.GetWeight(e)
	if da.Ge(edgeWeight, pkg.INF_WEIGHT) {
		return
	}

	newDist := uInfo.GetDist() + edgeWeight

	vInfo, vAlreadyLabelled := info[v]
	if vAlreadyLabelled && (vInfo.IsSettled() || da.Ge(newDist, vInfo.GetDist())) {
		return
	}

	priority := newDist + bs.heuristic(v, root)
	if vAlreadyLabelled {
		vInfo.UpdateDist(newDist)
		vInfo.UpdateParent(newVertexEdgePair(u, e.GetEdgeId()))
		pq.DecreaseKey(vInfo.GetHeapNode(), priority)
		return
	}

	vhNode := da.NewPriorityQueueNode(priority, v)
	info[v] = NewVertexInfo(newDist, newVertexEdgePair(u, e.GetEdgeId()), vhNode)
	pq.Insert(vhNode)
}

// mergePath. forward subpath s ... meet followed by the backward subpath meet ... t, meet counted once.
func (bs *BidirectionalSearch) mergePath(meet da.Index) []da.Index {
	forwardPath := walkParents(bs.forwardInfo, meet)
	forwardPath = util.ReverseG(forwardPath)

	// t ... meet, the order the backward search discovered it
	backwardPath := util.ReverseG(walkParents(bs.backwardInfo, meet))

	bs.stats.ForwardLength = len(forwardPath)
	bs.stats.BackwardLength = len(backwardPath)

	return MergeSubpaths(forwardPath, backwardPath)
}

// walkParents. meet, parent(meet), ... up to the search root.
func walkParents(info map[da.Index]*VertexInfo, meet da.Index) []da.Index {
	path := []da.Index{meet}
	cur := info[meet]
	for cur.GetParent().getVertex() != da.INVALID_VERTEX_ID {
		parent := cur.GetParent().getVertex()
		path = append(path, parent)
		cur = info[parent]
	}
	return path
}

// MergeSubpaths. forward = s ... meet, backward = t ... meet. result = forward + reverse(backward)[1:].
func MergeSubpaths(forward, backward []da.Index) []da.Index {
	if len(forward) == 0 {
		return util.ReverseG(backward)
	}
	reversed := util.ReverseG(backward)
	merged := make([]da.Index, 0, len(forward)+len(backward)-1)
	merged = append(merged, forward...)
	if len(reversed) > 0 {
		merged = append(merged, reversed[1:]...)
	}
	return merged
}
