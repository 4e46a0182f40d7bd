package core

import "fmt"

// AddRoute inserts an undirected route between a and b with the given weight.
//
// Implementation:
//   - Stage 1: Validate IDs, self-loop and weight before taking the lock.
//   - Stage 2: Under the write lock, return (false, nil) if the pair already
//     has a route; the existing weight is left untouched.
//   - Stage 3: Register missing cities in insertion order, store the route,
//     bump degrees and the epoch, drop the cached snapshot.
//
// Returns:
//   - created: true when a new route was stored, false when it already existed.
//
// Errors:
//   - ErrEmptyCityID, ErrSelfLoop, ErrInvalidWeight (ErrWeightTooLarge above MaxWeight).
//
// Complexity: O(1) amortized.
func (g *Graph) AddRoute(a, b string, weight int64) (bool, error) {
	if err := validateRoute(a, b, weight); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.insertLocked(a, b, weight) {
		return false, nil
	}
	g.touchLocked()

	return true, nil
}

// Load applies routes under one write lock, first emptying the graph when
// replace is set. Readers observe the graph either before or after the whole
// batch, and the epoch advances once if anything changed.
//
// Invalid routes are skipped and listed in Rejected; pairs that already have
// a route (in the graph or earlier in the batch) count as Existing and keep
// their weight.
//
// Complexity: O(len(routes)).
func (g *Graph) Load(routes []Route, replace bool) LoadSummary {
	var sum LoadSummary

	g.mu.Lock()
	defer g.mu.Unlock()

	changed := replace
	if replace {
		g.resetLocked()
	}
	for _, r := range routes {
		if err := validateRoute(r.From, r.To, r.Weight); err != nil {
			sum.Rejected = append(sum.Rejected, RejectedRoute{Route: r, Err: err})
			continue
		}
		if g.insertLocked(r.From, r.To, r.Weight) {
			sum.Added++
			changed = true
		} else {
			sum.Existing++
		}
	}
	if changed {
		g.touchLocked()
	}

	return sum
}

// UpdateRoute replaces the weight of an existing route, keeping its position
// in the route order.
//
// Errors:
//   - ErrEmptyCityID, ErrSelfLoop, ErrInvalidWeight on bad input.
//   - ErrCityNotFound if either endpoint is absent.
//   - ErrRouteNotFound if both cities exist but are not directly connected.
//
// Complexity: O(1).
func (g *Graph) UpdateRoute(a, b string, weight int64) error {
	if err := validateRoute(a, b, weight); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range [2]string{a, b} {
		if _, ok := g.cities[id]; !ok {
			return fmt.Errorf("%w: %q", ErrCityNotFound, id)
		}
	}
	entry, ok := g.routes[keyOf(a, b)]
	if !ok {
		return fmt.Errorf("%w: %s <-> %s", ErrRouteNotFound, a, b)
	}
	entry.route.Weight = weight
	g.touchLocked()

	return nil
}

// RemoveRoute deletes the route between a and b.
// Under OrphanPrune, endpoints left without routes are deleted too.
//
// Errors:
//   - ErrRouteNotFound if no such route exists (including absent cities).
//
// Complexity: O(1).
func (g *Graph) RemoveRoute(a, b string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := keyOf(a, b)
	if _, ok := g.routes[key]; !ok {
		return fmt.Errorf("%w: %s <-> %s", ErrRouteNotFound, a, b)
	}
	delete(g.routes, key)
	for _, id := range [2]string{a, b} {
		g.degree[id]--
		if g.degree[id] == 0 && g.orphans == OrphanPrune {
			delete(g.degree, id)
			delete(g.cities, id)
		}
	}
	g.touchLocked()

	return nil
}

// Clear removes every city and route. It always succeeds.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.resetLocked()
	g.touchLocked()
}

// HasCity reports whether id is a known city.
func (g *Graph) HasCity(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.cities[id]

	return ok
}

// HasRoute reports whether a and b are directly connected.
func (g *Graph) HasRoute(a, b string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.routes[keyOf(a, b)]

	return ok
}

// Weight returns the direct route weight between a and b.
func (g *Graph) Weight(a, b string) (int64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if e, ok := g.routes[keyOf(a, b)]; ok {
		return e.route.Weight, true
	}

	return 0, false
}

// CityCount returns the number of cities.
func (g *Graph) CityCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.cities)
}

// RouteCount returns the number of routes.
func (g *Graph) RouteCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.routes)
}

// Epoch returns the mutation counter. Equal epochs imply identical contents.
func (g *Graph) Epoch() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.epoch
}

// Cities returns all city IDs in first-insertion order.
func (g *Graph) Cities() []string { return g.Snapshot().Cities() }

// Routes returns every route once, in insertion order.
func (g *Graph) Routes() []Route { return g.Snapshot().Routes() }

// ensureCityLocked registers id if it is new. Caller holds mu.
func (g *Graph) ensureCityLocked(id string) {
	if _, ok := g.cities[id]; ok {
		return
	}
	g.seq++
	g.cities[id] = g.seq
}

// insertLocked stores a validated route unless the pair already has one.
// Caller holds mu.
func (g *Graph) insertLocked(a, b string, weight int64) bool {
	key := keyOf(a, b)
	if _, exists := g.routes[key]; exists {
		return false
	}
	g.ensureCityLocked(a)
	g.ensureCityLocked(b)
	g.seq++
	g.routes[key] = &routeEntry{route: Route{From: a, To: b, Weight: weight}, seq: g.seq}
	g.degree[a]++
	g.degree[b]++

	return true
}

// resetLocked drops every city and route. Caller holds mu.
func (g *Graph) resetLocked() {
	g.cities = make(map[string]uint64)
	g.degree = make(map[string]int)
	g.routes = make(map[pairKey]*routeEntry)
}

// touchLocked records a successful mutation. Caller holds mu.
func (g *Graph) touchLocked() {
	g.epoch++
	g.snap = nil
}

func validateRoute(a, b string, weight int64) error {
	if a == "" || b == "" {
		return ErrEmptyCityID
	}
	if a == b {
		return fmt.Errorf("%w: %q", ErrSelfLoop, a)
	}
	if weight <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWeight, weight)
	}
	if weight > MaxWeight {
		return fmt.Errorf("%w: got %d", ErrWeightTooLarge, weight)
	}

	return nil
}
