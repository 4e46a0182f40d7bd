// Package bfs provides breadth-first search over a core.View, returning
// hop-count distances, parent links, and visit order.
//
// What
//
//   - BFS explores cities in non-decreasing hop count from a start city and
//     returns a BFSResult with Order, Depth and Parent.
//   - FewestStops builds on BFS to return the path with the fewest routes
//     between two cities, reporting the summed route weight of that path.
//   - Hooks and limits: WithOnVisit (may abort), WithMaxDepth, WithStopAt, WithContext.
//
// Determinism
//
//	core.View lists neighbors in route insertion order and BFS enqueues them
//	in that order, so the visit sequence and every returned path are reproducible.
//
// Complexity
//
//	Time O(V + E), space O(V).
package bfs
