// File: view.go
// Role: Immutable per-epoch snapshots consumed by the query engines.
// Determinism:
//   - Cities in first-insertion order, routes in insertion order,
//     neighbor lists in route insertion order.
// Concurrency:
//   - A View never changes after construction; any number of goroutines may
//     read it without locking. Graph publishes one View per epoch.

package core

import "sort"

// View is a read-only snapshot of a Graph at one epoch.
//
// Engines receive a *View for the duration of a query and never retain it.
// Slices returned by Neighbors are shared and must not be modified.
type View struct {
	epoch  uint64
	cities []string
	index  map[string]int // city ID → position in cities
	routes []Route
	adj    map[string][]Neighbor
}

// Snapshot returns the View for the current epoch, building it on first use.
//
// Implementation:
//   - Stage 1: Under the read lock, return the cached View if present.
//   - Stage 2: Otherwise take the write lock, re-check, and build the View
//     by ordering cities and routes by insertion sequence.
//
// Complexity: O(1) when cached, O((V + E) log(V + E)) to build.
func (g *Graph) Snapshot() *View {
	g.mu.RLock()
	v := g.snap
	g.mu.RUnlock()
	if v != nil {
		return v
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.snap == nil {
		g.snap = g.buildViewLocked()
	}

	return g.snap
}

func (g *Graph) buildViewLocked() *View {
	cities := make([]string, 0, len(g.cities))
	for id := range g.cities {
		cities = append(cities, id)
	}
	sort.Slice(cities, func(i, j int) bool { return g.cities[cities[i]] < g.cities[cities[j]] })

	entries := make([]*routeEntry, 0, len(g.routes))
	for _, e := range g.routes {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	v := &View{
		epoch:  g.epoch,
		cities: cities,
		index:  make(map[string]int, len(cities)),
		routes: make([]Route, len(entries)),
		adj:    make(map[string][]Neighbor, len(cities)),
	}
	for i, id := range cities {
		v.index[id] = i
		v.adj[id] = make([]Neighbor, 0, g.degree[id])
	}
	for i, e := range entries {
		r := e.route
		v.routes[i] = r
		v.adj[r.From] = append(v.adj[r.From], Neighbor{To: r.To, Weight: r.Weight})
		v.adj[r.To] = append(v.adj[r.To], Neighbor{To: r.From, Weight: r.Weight})
	}

	return v
}

// Epoch returns the graph epoch this View was taken at.
func (v *View) Epoch() uint64 { return v.epoch }

// CityCount returns the number of cities in the View.
func (v *View) CityCount() int { return len(v.cities) }

// RouteCount returns the number of routes in the View.
func (v *View) RouteCount() int { return len(v.routes) }

// HasCity reports whether id is a city of this View.
func (v *View) HasCity(id string) bool {
	_, ok := v.index[id]
	return ok
}

// Index returns the insertion position of id, or -1 if absent.
func (v *View) Index(id string) int {
	if i, ok := v.index[id]; ok {
		return i
	}
	return -1
}

// Cities returns a copy of the city IDs in first-insertion order.
func (v *View) Cities() []string {
	out := make([]string, len(v.cities))
	copy(out, v.cities)
	return out
}

// Routes returns a copy of the routes in insertion order.
func (v *View) Routes() []Route {
	out := make([]Route, len(v.routes))
	copy(out, v.routes)
	return out
}

// Neighbors returns the adjacency list of id (nil if id is absent).
// The returned slice is shared with the View.
func (v *View) Neighbors(id string) []Neighbor { return v.adj[id] }

// Weight returns the direct route weight between a and b.
// Complexity: O(deg(a)).
func (v *View) Weight(a, b string) (int64, bool) {
	for _, n := range v.adj[a] {
		if n.To == b {
			return n.Weight, true
		}
	}
	return 0, false
}
