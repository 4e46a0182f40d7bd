// Package core provides the thread-safe city/route store behind every query
// of cityroutes, together with immutable snapshots for readers.
//
// The graph G = (C, R) is undirected and weighted:
//
//   - Cities are case-sensitive, non-empty string IDs created implicitly by AddRoute.
//   - Routes connect two distinct cities with a strictly positive int64 weight.
//   - At most one route exists per unordered pair; (A, B) and (B, A) are the
//     same route, stored under a normalized pairKey{lo, hi}.
//
// Mutations (AddRoute, UpdateRoute, RemoveRoute, Clear) take the single write
// lock and apply entirely or not at all. Each successful mutation bumps the
// epoch. Snapshot returns an immutable *View for the current epoch; the View
// is built once and shared, so every reader observes either the pre- or the
// post-mutation graph and never a partial state.
//
// Orphan policy:
//
//	– OrphanRetain (default): a city whose last route is removed stays as an
//	  isolated node and is still listed by Cities.
//	– OrphanPrune (WithPruneOrphans): such a city is deleted with the route.
//
// Determinism:
//
//	Cities are listed in first-insertion order, routes in insertion order,
//	and every neighbor list follows route insertion order, so all engines
//	built on a View break ties the same way on every run.
//
// Errors are sentinel values (ErrCityNotFound, ErrRouteNotFound, ...) wrapped
// with context via fmt.Errorf("%w: ..."); test them with errors.Is, or map
// them to stable names with Kind.
//
// Quick example:
//
//	g := core.NewGraph()
//	_, _ = g.AddRoute("Boston", "New York", 215)
//	_, _ = g.AddRoute("New York", "Philadelphia", 95)
//	v := g.Snapshot()
//	fmt.Println(v.Cities()) // [Boston New York Philadelphia]
package core
