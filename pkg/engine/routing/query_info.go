package routing

import (
	da "github.com/lintang-b-s/Slopex/pkg/datastructure"
)

type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

// VertexInfo. search label of one vertex in one search direction
type VertexInfo struct {
	dist     float64 // cost from the search root
	parent   vertexEdgePair
	settled  bool // popped from the queue, dist is final for this direction
	heapNode *da.PriorityQueueNode[da.Index]
}

func NewVertexInfo(dist float64, parent vertexEdgePair, hnode *da.PriorityQueueNode[da.Index]) *VertexInfo {
	return &VertexInfo{
		dist:     dist,
		parent:   parent,
		heapNode: hnode,
	}
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) UpdateDist(dist float64) {
	vi.dist = dist
}

func (vi *VertexInfo) UpdateParent(par vertexEdgePair) {
	vi.parent = par
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) Settle() {
	vi.settled = true
}

func (vi *VertexInfo) IsSettled() bool {
	return vi.settled
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.Index] {
	return vi.heapNode
}
