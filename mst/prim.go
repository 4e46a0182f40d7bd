package mst

import (
	"container/heap"

	"github.com/katalvlaran/cityroutes/core"
)

// Prim computes a minimum spanning forest of v by growing one tree per
// component, rooted at the first unvisited city in insertion order.
// Its total cost always equals Kruskal's; the chosen edges may differ on ties.
//
// Errors:
//   - ErrGraphNil if v is nil.
//   - core.ErrEmptyGraph if v has no cities.
//
// Complexity: O(E log E) time, O(V + E) space.
func Prim(v *core.View) (Network, error) {
	if v == nil {
		return Network{}, ErrGraphNil
	}
	cities := v.Cities()
	if len(cities) == 0 {
		return Network{}, core.ErrEmptyGraph
	}

	visited := make(map[string]bool, len(cities))
	net := Network{Edges: make([]core.Route, 0, len(cities)-1)}
	pq := &edgePQ{}
	var seq uint64

	push := func(from string) {
		for _, nb := range v.Neighbors(from) {
			if !visited[nb.To] {
				seq++
				heap.Push(pq, candidate{route: core.Route{From: from, To: nb.To, Weight: nb.Weight}, seq: seq})
			}
		}
	}

	for _, root := range cities {
		if visited[root] {
			continue
		}
		net.Components++
		visited[root] = true
		push(root)

		for pq.Len() > 0 {
			c := heap.Pop(pq).(candidate)
			if visited[c.route.To] {
				continue
			}
			visited[c.route.To] = true
			net.Edges = append(net.Edges, c.route)
			net.TotalCost += c.route.Weight
			push(c.route.To)
		}
	}

	return net, nil
}

// candidate is a frontier route; seq keeps equal weights in discovery order.
type candidate struct {
	route core.Route
	seq   uint64
}

type edgePQ []candidate

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	if pq[i].route.Weight != pq[j].route.Weight {
		return pq[i].route.Weight < pq[j].route.Weight
	}
	return pq[i].seq < pq[j].seq
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(candidate)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
