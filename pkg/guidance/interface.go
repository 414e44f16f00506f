package guidance

import "github.com/lintang-b-s/Slopex/pkg/datastructure"

type Graph interface {
	GetVertex(u datastructure.Index) *datastructure.Vertex
	GetEdge(e datastructure.Index) *datastructure.Edge
	ForOutEdgesOf(u datastructure.Index, handle func(e *datastructure.Edge))
}
