// Package mst computes the cheapest network: a minimum spanning forest of
// the city graph.
//
// Algorithms:
//
//	– Kruskal (default): stable sort of routes by weight + DisjointSet.
//	– Prim: heap-driven growth of one tree per component.
//
// Both return a Network with the chosen routes, their total cost and the
// number of components. A disconnected graph is not an error: the forest is
// returned and Network.Connected reports false. Callers who need a single
// spanning tree pass WithRequireConnected to Compute and get core.ErrDisconnected.
//
// Complexity: O(E log E) time, O(V + E) space for both methods.
package mst
