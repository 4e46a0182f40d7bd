// Package dijkstra implements Dijkstra's shortest-path algorithm on the
// undirected, positively weighted city graph exposed by core.View.
//
// Overview:
//
//   - ShortestPath returns the minimum-weight path between two cities.
//   - Distances returns the full single-source tree (distances + predecessors),
//     which the tour planner uses to build its pairwise distance matrix.
//   - A binary min-heap with lazy decrease-key always expands the next-closest city.
//
// Determinism:
//
//	Heap entries with equal distance pop in push order, and relaxation only
//	accepts strictly shorter distances, so among equal-weight paths the one
//	discovered first through neighbor insertion order wins.
//
// Errors:
//
//	core.ErrCityNotFound when an endpoint is absent, core.ErrUnreachable when
//	the destination lies in another component.
//
// Example:
//
//	p, err := dijkstra.ShortestPath(g.Snapshot(), "Boston", "Washington")
//	if err != nil { ... }
//	fmt.Println(p.Cities, p.Weight)
package dijkstra
