// Package cityroutes is an in-memory route-planning engine for a network of
// cities joined by undirected, positively weighted routes.
//
// The module is organized as small packages that build on one another:
//
//	core/       - Graph store, immutable View snapshots, sentinel errors
//	dijkstra/   - shortest path by total distance
//	bfs/        - path with the fewest stops
//	dfs/        - reachability and the bounded exhaustive longest path
//	mst/        - cheapest network (Kruskal or Prim spanning forest)
//	tsp/        - tour planning: exact for small inputs, 2-opt above that
//	cache/      - epoch-keyed query result cache
//	pathfinder/ - facade that turns engine results into user-facing results
//	builder/    - deterministic synthetic networks for tests and benchmarks
//	config/     - layered configuration (defaults, YAML, .env, environment)
//	logging/    - slog logger construction
//	telemetry/  - OpenTelemetry tracing and metrics exporters
//	seed/       - route loaders: embedded sample, YAML, MySQL, Neo4j
//	server/     - HTTP API over the facade
//	cmd/cityroutes - CLI: serve, query, seed validate
//
// Every query reads from a View taken at a single epoch, so a result always
// reflects one consistent state of the network even while writers proceed.
package cityroutes
