package mst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cityroutes/core"
)

// Kruskal computes a minimum spanning forest of v.
//
// Routes are sorted ascending by weight with a stable sort, so equal weights
// keep insertion order; each route joining two different sets of the
// DisjointSet is taken. On a disconnected graph the result is the minimum
// spanning forest and Components reports its tree count.
//
// Errors:
//   - ErrGraphNil if v is nil.
//   - core.ErrEmptyGraph if v has no cities.
//
// Complexity: O(E log E) time, O(V + E) space.
func Kruskal(v *core.View) (Network, error) {
	if v == nil {
		return Network{}, ErrGraphNil
	}
	cities := v.Cities()
	if len(cities) == 0 {
		return Network{}, core.ErrEmptyGraph
	}

	routes := v.Routes()
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Weight < routes[j].Weight
	})

	ds := NewDisjointSet(cities)
	net := Network{Edges: make([]core.Route, 0, len(cities)-1)}
	for _, r := range routes {
		if !ds.Union(r.From, r.To) {
			continue
		}
		net.Edges = append(net.Edges, r)
		net.TotalCost += r.Weight
		if len(net.Edges) == len(cities)-1 {
			break
		}
	}
	net.Components = ds.Sets()

	return net, nil
}

func disconnected(components int) error {
	return fmt.Errorf("%w: %d components", core.ErrDisconnected, components)
}
