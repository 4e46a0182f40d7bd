// SPDX-License-Identifier: MIT

// Package builder generates deterministic synthetic route networks.
//
// It is used by benchmarks and tests that need networks larger than a
// hand-written fixture: chains, rings, grids, complete networks, stars and
// random sparse networks.
//
// Every generator is a Constructor; Build applies them in order to one graph,
// so constructors compose (a Path backbone plus RandomSparse extras gives a
// connected random network). With the same options and seed, Build always
// produces the same cities, routes and insertion order.
//
// Cities exist only as route endpoints, so a generator never creates an
// isolated city.
//
//	g, err := builder.Build(nil,
//		[]builder.Option{builder.WithSeed(7), builder.WithCityPrefix("c")},
//		builder.Path(50), builder.RandomSparse(50, 0.05))
package builder
