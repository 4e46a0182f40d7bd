// Package dfs implements the depth-first engines of cityroutes.
//
//   - Reachable lists every city connected to a start city using an explicit
//     stack, in discovery order, excluding the start.
//   - LongestPath enumerates simple paths by backtracking and keeps the one
//     with the greatest total weight.
//
// Longest simple path is NP-hard; LongestPath is exact but exponential, so it
// refuses components above MaxCities and honors a context deadline.
package dfs
