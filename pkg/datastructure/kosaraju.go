package datastructure

import "github.com/lintang-b-s/Slopex/pkg/util"

// ComponentStats. strongly connected components of the directed road graph.
type ComponentStats struct {
	Count         int
	LargestSize   int
	LargestID     Index
	ComponentOf   []Index // vertex -> component id
	ComponentSize []int
}

// InLargestComponent. vertices outside the largest component cannot reach, or cannot be reached from, most of the network.
func (cs ComponentStats) InLargestComponent(u Index) bool {
	return cs.Count > 0 && cs.ComponentOf[u] == cs.LargestID
}

// RunKosaraju. kosaraju's algorithm over outgoing (first pass) & incoming (second pass) edges.
// both dfs passes use an explicit stack, road graphs are too deep for recursion.
func (g *Graph) RunKosaraju() ComponentStats {
	n := g.NumberOfVertices()
	order := make([]Index, 0, n)
	visited := make([]bool, n)

	type frame struct {
		v    Index
		next int
	}

	for s := 0; s < n; s++ {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack := []frame{{v: Index(s)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := g.outgoing[top.v]
			if top.next < len(out) {
				head := g.edges[out[top.next]].head
				top.next++
				if !visited[head] {
					visited[head] = true
					stack = append(stack, frame{v: head})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}

	order = util.ReverseG(order)

	stats := ComponentStats{
		ComponentOf:   make([]Index, n),
		ComponentSize: make([]int, 0),
	}
	assigned := make([]bool, n)
	for _, root := range order {
		if assigned[root] {
			continue
		}
		id := Index(stats.Count)
		size := 0
		assigned[root] = true
		stack := []Index{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stats.ComponentOf[v] = id
			size++
			for _, eid := range g.incoming[v] {
				tail := g.edges[eid].tail
				if !assigned[tail] {
					assigned[tail] = true
					stack = append(stack, tail)
				}
			}
		}
		stats.ComponentSize = append(stats.ComponentSize, size)
		if size > stats.LargestSize {
			stats.LargestSize = size
			stats.LargestID = id
		}
		stats.Count++
	}
	return stats
}
