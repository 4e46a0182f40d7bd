// Package pathfinder is the synchronous call interface of cityroutes.
//
// A PathFinder owns one core.Graph and turns every engine outcome into a
// result struct that is either a success payload or a failure with a
// human-readable message; errors never escape. Query results are cached per
// graph epoch, and the exponential searches (LongestPath, PlanTour) run under
// a deadline, a concurrency bound and singleflight deduplication.
package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/cityroutes/bfs"
	"github.com/katalvlaran/cityroutes/cache"
	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/dfs"
	"github.com/katalvlaran/cityroutes/dijkstra"
	"github.com/katalvlaran/cityroutes/mst"
	"github.com/katalvlaran/cityroutes/tsp"
)

const defaultCacheSize = 1024

// PathFinder answers route queries over a single graph. It's safe for concurrent use.
type PathFinder struct {
	graph     *core.Graph
	logger    *slog.Logger
	limits    Limits
	cacheSize int
	cache     *cache.QueryCache[any]
	flight    singleflight.Group
	sem       *semaphore.Weighted
}

// New creates a PathFinder over an empty graph unless WithGraph is given.
func New(opts ...Option) *PathFinder {
	p := &PathFinder{
		graph:     core.NewGraph(),
		logger:    slog.Default(),
		limits:    DefaultLimits(),
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cacheSize > 0 {
		p.cache = cache.New[any](p.cacheSize)
	}
	p.sem = semaphore.NewWeighted(p.limits.MaxConcurrentSearches)

	return p
}

// Graph returns the underlying store.
func (p *PathFinder) Graph() *core.Graph { return p.graph }

// Limits returns the effective search limits.
func (p *PathFinder) Limits() Limits { return p.limits }

// CacheStats reports query cache counters (zero value if caching is disabled).
func (p *PathFinder) CacheStats() cache.Stats {
	if p.cache == nil {
		return cache.Stats{}
	}
	return p.cache.Stats()
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// AddRoute creates a route. Re-adding an existing pair changes nothing.
func (p *PathFinder) AddRoute(ctx context.Context, a, b string, distance int64) OperationResult {
	created, err := p.graph.AddRoute(a, b, distance)
	var res OperationResult
	switch {
	case err != nil:
		res.Message = mutationMessage(err)
	case !created:
		res.Message = fmt.Sprintf("Route already exists: %s <-> %s. Use 'Update Route' to change it.", a, b)
	default:
		res = OperationResult{Success: true, Message: fmt.Sprintf("Route added: %s <-> %s (%d km)", a, b, distance)}
	}
	p.afterMutation(ctx, "add_route", res, "from", a, "to", b, "distance", distance)

	return res
}

// UpdateRoute changes the distance of an existing route.
func (p *PathFinder) UpdateRoute(ctx context.Context, a, b string, distance int64) OperationResult {
	var res OperationResult
	if err := p.graph.UpdateRoute(a, b, distance); err != nil {
		res.Message = mutationMessage(err)
	} else {
		res = OperationResult{Success: true, Message: fmt.Sprintf("Route updated: %s <-> %s (%d km)", a, b, distance)}
	}
	p.afterMutation(ctx, "update_route", res, "from", a, "to", b, "distance", distance)

	return res
}

// RemoveRoute deletes a route.
func (p *PathFinder) RemoveRoute(ctx context.Context, a, b string) OperationResult {
	var res OperationResult
	if err := p.graph.RemoveRoute(a, b); err != nil {
		res.Message = "Route not found."
	} else {
		res = OperationResult{Success: true, Message: fmt.Sprintf("Route removed: %s <-> %s", a, b)}
	}
	p.afterMutation(ctx, "remove_route", res, "from", a, "to", b)

	return res
}

// Clear removes all cities and routes.
func (p *PathFinder) Clear(ctx context.Context) OperationResult {
	p.graph.Clear()
	res := OperationResult{Success: true, Message: "All data cleared"}
	p.afterMutation(ctx, "clear", res)

	return res
}

// LoadRoutes adds routes in bulk, optionally replacing the graph. The batch is
// applied atomically, so concurrent queries never see a half-loaded network.
// Existing and invalid routes are skipped and counted in the message.
func (p *PathFinder) LoadRoutes(ctx context.Context, routes []core.Route, replace bool) OperationResult {
	sum := p.graph.Load(routes, replace)
	for _, rej := range sum.Rejected {
		p.logger.WarnContext(ctx, "skipping invalid route",
			"from", rej.Route.From, "to", rej.Route.To, "distance", rej.Route.Weight, "error", rej.Err)
	}
	invalid := len(sum.Rejected)
	res := OperationResult{
		Success: invalid == 0,
		Message: fmt.Sprintf("Loaded %d routes (%d already present, %d invalid)", sum.Added, sum.Existing, invalid),
	}
	p.afterMutation(ctx, "load_routes", res,
		"added", sum.Added, "existing", sum.Existing, "invalid", invalid, "replace", replace)

	return res
}

func (p *PathFinder) afterMutation(ctx context.Context, op string, res OperationResult, attrs ...any) {
	recordMutationMetrics(ctx, op, res.Success)
	if p.cache != nil {
		p.cache.Advance(p.graph.Epoch())
	}
	attrs = append(attrs, "op", op, "message", res.Message)
	if res.Success {
		p.logger.InfoContext(ctx, "graph mutated", attrs...)
	} else {
		p.logger.DebugContext(ctx, "graph mutation rejected", attrs...)
	}
}

// ---------------------------------------------------------------------------
// Structural reads
// ---------------------------------------------------------------------------

// Cities lists every city in first-insertion order.
func (p *PathFinder) Cities() []string { return p.graph.Cities() }

// Routes lists every route in insertion order.
func (p *PathFinder) Routes() []core.Route { return p.graph.Routes() }

// Snapshot returns cities and routes from one consistent View.
func (p *PathFinder) Snapshot() GraphSnapshot {
	v := p.graph.Snapshot()
	return GraphSnapshot{Cities: v.Cities(), Routes: v.Routes()}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ShortestPath finds the minimum-distance path between two cities.
func (p *PathFinder) ShortestPath(ctx context.Context, start, end string) PathResult {
	return query(ctx, p, "shortest_path", []string{start, end}, func(_ context.Context, v *core.View) (PathResult, error) {
		path, err := dijkstra.ShortestPath(v, start, end)
		if err != nil {
			return PathResult{Path: []string{}, Message: queryMessage(err)}, err
		}
		msg := "Path found."
		if start == end {
			msg = "Start and destination are the same."
		}
		return PathResult{Found: true, Path: path.Cities, TotalWeight: path.Weight, Message: msg}, nil
	})
}

// FewestStops finds the path with the fewest routes between two cities.
func (p *PathFinder) FewestStops(ctx context.Context, start, end string) StopsResult {
	return query(ctx, p, "fewest_stops", []string{start, end}, func(_ context.Context, v *core.View) (StopsResult, error) {
		path, err := bfs.FewestStops(v, start, end)
		if err != nil {
			msg := queryMessage(err)
			if errors.Is(err, core.ErrUnreachable) {
				msg = "No path exists between these cities."
			}
			return StopsResult{Path: []string{}, Message: msg}, err
		}
		return StopsResult{Found: true, Path: path.Cities, StopCount: path.Stops(), Message: "Path found with fewest stops."}, nil
	})
}

// ReachableCities lists every city connected to start, excluding start.
func (p *PathFinder) ReachableCities(ctx context.Context, start string) ReachableResult {
	return query(ctx, p, "reachable", []string{start}, func(_ context.Context, v *core.View) (ReachableResult, error) {
		cities, err := dfs.Reachable(v, start)
		if err != nil {
			msg := queryMessage(err)
			if errors.Is(err, core.ErrCityNotFound) {
				msg = fmt.Sprintf("City '%s' not found.", start)
			}
			return ReachableResult{Cities: []string{}, Message: msg}, err
		}
		return ReachableResult{Cities: cities, Message: fmt.Sprintf("Found %d reachable cities", len(cities))}, nil
	})
}

// LongestPath finds the maximum-distance simple path between two cities.
func (p *PathFinder) LongestPath(ctx context.Context, start, end string) PathResult {
	return boundedQuery(ctx, p, "longest_path", []string{start, end}, func(ctx context.Context, v *core.View) (PathResult, error) {
		path, err := dfs.LongestPath(v, start, end,
			dfs.WithContext(ctx),
			dfs.WithMaxCities(p.limits.LongestPathMaxCities),
		)
		if err != nil {
			return PathResult{Path: []string{}, Message: queryMessage(err)}, err
		}
		return PathResult{Found: true, Path: path.Cities, TotalWeight: path.Weight, Message: "Longest path found."}, nil
	}, func(msg string) PathResult {
		return PathResult{Path: []string{}, Message: msg}
	})
}

// PlanTour orders the requested cities into a short route starting at cities[0].
func (p *PathFinder) PlanTour(ctx context.Context, cities []string) TourResult {
	return boundedQuery(ctx, p, "multi_city_tour", cities, func(ctx context.Context, v *core.View) (TourResult, error) {
		tour, err := tsp.Plan(v, cities,
			tsp.WithContext(ctx),
			tsp.WithExactLimit(p.limits.TourExactLimit),
		)
		if err != nil {
			return TourResult{Path: []string{}, Message: tourMessage(v, err, cities)}, err
		}
		msg := "Optimal tour planned successfully."
		if !tour.Exact {
			msg = fmt.Sprintf("Tour planned with a heuristic ordering for %d cities; it may not be optimal.", len(cities))
		}
		return TourResult{
			Found:         true,
			Path:          tour.Path,
			TotalDistance: tour.Distance,
			Message:       msg,
			Stops:         tour.Stops,
			Exact:         tour.Exact,
		}, nil
	}, func(msg string) TourResult {
		return TourResult{Path: []string{}, Message: msg}
	})
}

// CheapestNetwork computes the minimum spanning forest of the whole graph.
func (p *PathFinder) CheapestNetwork(ctx context.Context) NetworkResult {
	return query(ctx, p, "cheapest_network", nil, func(_ context.Context, v *core.View) (NetworkResult, error) {
		net, err := mst.Compute(v, mst.WithMethod(p.limits.NetworkMethod))
		if err != nil {
			return NetworkResult{Edges: []NetworkEdge{}, Message: queryMessage(err)}, err
		}
		res := NetworkResult{
			Found:      true,
			Edges:      make([]NetworkEdge, len(net.Edges)),
			TotalCost:  net.TotalCost,
			Message:    "Cheapest network found successfully.",
			Components: net.Components,
		}
		for i, r := range net.Edges {
			res.Edges[i] = NetworkEdge{From: r.From, To: r.To, Weight: r.Weight}
		}
		if !net.Connected() {
			res.Message = fmt.Sprintf("Graph is not fully connected; returning a spanning forest over %d components.", net.Components)
		}
		return res, nil
	})
}

// ---------------------------------------------------------------------------
// Query plumbing
// ---------------------------------------------------------------------------

type computeFunc[T any] func(ctx context.Context, v *core.View) (T, error)

// query runs compute over the current snapshot, serving and filling the epoch cache.
func query[T any](ctx context.Context, p *PathFinder, op string, args []string, compute computeFunc[T]) T {
	v := p.graph.Snapshot()
	ctx, span := startQuerySpan(ctx, op, v.Epoch(), args...)
	defer span.End()
	began := time.Now()

	key := cache.Key{Op: op, Args: strings.Join(args, "\x00"), Epoch: v.Epoch()}
	if p.cache != nil {
		if hit, ok := p.cache.Get(key); ok {
			if res, ok := hit.(T); ok {
				recordCacheHit(ctx, op)
				setSpanOutcome(span, "cached", true)
				return res
			}
		}
	}

	res, err := compute(ctx, v)
	kind := core.Kind(err)
	if p.cache != nil && cacheable(err) {
		p.cache.Put(key, res)
	}
	p.logQuery(ctx, op, args, err)
	recordQueryMetrics(ctx, op, time.Since(began), kind)
	setSpanOutcome(span, kind, false)

	return res
}

// boundedQuery wraps an exponential search with a deadline, the search
// semaphore and singleflight deduplication of identical in-flight requests.
//
// The shared search runs detached from any single caller: it keeps the
// caller's values but only the QueryTimeout deadline. Each caller stops
// waiting when its own context ends, without affecting the others.
func boundedQuery[T any](ctx context.Context, p *PathFinder, op string, args []string,
	compute computeFunc[T], failed func(msg string) T) T {
	return query(ctx, p, op, args, func(ctx context.Context, v *core.View) (T, error) {
		flightKey := fmt.Sprintf("%s|%d|%s", op, v.Epoch(), strings.Join(args, "\x00"))
		shared := context.WithoutCancel(ctx)
		ch := p.flight.DoChan(flightKey, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(shared, p.limits.QueryTimeout)
			defer cancel()

			if err := p.sem.Acquire(ctx, 1); err != nil {
				err = fmt.Errorf("%w: waiting for a search slot", core.ErrTimeout)
				return failed(failureMessage(err)), err
			}
			defer p.sem.Release(1)

			return compute(ctx, v)
		})

		select {
		case r := <-ch:
			return r.Val.(T), r.Err
		case <-ctx.Done():
			err := ctx.Err()
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %w", core.ErrTimeout, err)
			}
			return failed(failureMessage(err)), err
		}
	})
}

// cacheable reports whether a query outcome depends only on the graph.
func cacheable(err error) bool {
	return !errors.Is(err, core.ErrTimeout) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, context.Canceled)
}

func (p *PathFinder) logQuery(ctx context.Context, op string, args []string, err error) {
	switch {
	case err == nil:
		p.logger.DebugContext(ctx, "query answered", "op", op, "args", args)
	case errors.Is(err, core.ErrTimeout), errors.Is(err, core.ErrLimitExceeded):
		p.logger.WarnContext(ctx, "query aborted", "op", op, "args", args, "kind", core.Kind(err), "error", err)
	default:
		p.logger.DebugContext(ctx, "query failed", "op", op, "args", args, "kind", core.Kind(err), "error", err)
	}
}
