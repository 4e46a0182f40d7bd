// Package tsp plans multi-city tours over the city graph.
//
// Plan takes a list of requested cities, fixes the first one as the start,
// and orders the rest to minimize the total shortest-path distance of the
// resulting open path (no return leg). Distances between stops are
// shortest-path distances, not direct routes, so stops need not be adjacent.
//
// Algorithms:
//
//   - Exact (n ≤ ExactLimit, default 9): enumeration of all (n−1)! orders with
//     branch-and-bound pruning. Optimal for the open path from the fixed start.
//   - Approximate (n > ExactLimit): nearest-neighbour construction followed by
//     first-improvement 2-opt. Tour.Exact is false; the order is a local optimum
//     and carries no optimality guarantee.
//
// The pairwise distance matrix is built with one Dijkstra run per stop,
// executed concurrently under an errgroup.
//
// Both searches poll the context every 2048 steps; a passed deadline is
// reported as core.ErrTimeout.
package tsp
