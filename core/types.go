// Package core defines the City/Route graph store and the immutable View
// snapshots that every query engine reads from.
//
// A single sync.RWMutex guards the store, so mutations are applied by one
// writer at a time while any number of readers hold snapshots.
//
// This file declares Route, Neighbor, Path, OrphanPolicy, GraphOption,
// the sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyCityID    - city ID is the empty string.
//	ErrCityNotFound   - requested city does not exist.
//	ErrRouteNotFound  - requested route does not exist.
//	ErrInvalidWeight  - route distance is zero, negative or above MaxWeight.
//	ErrWeightTooLarge - route distance is above MaxWeight (wraps ErrInvalidWeight).
//	ErrSelfLoop       - both route endpoints name the same city.
//	ErrUnreachable    - no path connects the requested cities.
//	ErrDisconnected   - the graph has more than one connected component.
//	ErrEmptyGraph     - the graph has no cities.
//	ErrInvalidTour    - tour request has fewer than two or duplicate cities.
//	ErrTimeout        - a bounded query ran past its deadline.
//	ErrLimitExceeded  - a bounded query exceeds its size ceiling.
package core

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors shared by the store and every query engine.
var (
	// ErrEmptyCityID indicates that a city ID is the empty string.
	ErrEmptyCityID = errors.New("core: city ID is empty")

	// ErrCityNotFound indicates an operation referenced a non-existent city.
	ErrCityNotFound = errors.New("core: city not found")

	// ErrRouteNotFound indicates an operation referenced a non-existent route.
	ErrRouteNotFound = errors.New("core: route not found")

	// ErrInvalidWeight indicates a route distance outside 1..MaxWeight.
	ErrInvalidWeight = errors.New("core: invalid route distance")

	// ErrSelfLoop indicates a route whose endpoints are the same city.
	ErrSelfLoop = errors.New("core: route endpoints must differ")

	// ErrUnreachable indicates that no path connects the requested cities.
	ErrUnreachable = errors.New("core: destination unreachable")

	// ErrDisconnected indicates the graph does not form a single component.
	ErrDisconnected = errors.New("core: graph is not fully connected")

	// ErrEmptyGraph indicates a query over a graph without cities.
	ErrEmptyGraph = errors.New("core: graph is empty")

	// ErrInvalidTour indicates a malformed tour request.
	ErrInvalidTour = errors.New("core: invalid tour request")

	// ErrTimeout indicates a bounded query exceeded its deadline.
	ErrTimeout = errors.New("core: query timed out")

	// ErrLimitExceeded indicates a bounded query refused an input above its ceiling.
	ErrLimitExceeded = errors.New("core: query exceeds size limit")
)

// MaxWeight is the largest accepted route distance. Any total over fewer than
// 2^23 route traversals stays below math.MaxInt64, so engines add weights
// without overflow checks.
const MaxWeight int64 = 1 << 40

// ErrWeightTooLarge indicates a route distance above MaxWeight.
var ErrWeightTooLarge = fmt.Errorf("%w: above %d", ErrInvalidWeight, MaxWeight)

// Route is an undirected, weighted connection between two distinct cities.
//
// From and To keep the orientation in which the route was first added;
// lookups treat (From, To) and (To, From) as the same route.
type Route struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int64  `json:"distance"`
}

// Neighbor is one adjacency entry of a city inside a View.
type Neighbor struct {
	To     string
	Weight int64
}

// pairKey is the normalized unordered key of a route: lo < hi lexicographically.
type pairKey struct {
	lo, hi string
}

// keyOf normalizes (a, b) so both orientations map to the same key.
func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// OrphanPolicy decides what happens to a city when its last route is removed.
type OrphanPolicy int

const (
	// OrphanRetain keeps the city as an isolated node (default).
	OrphanRetain OrphanPolicy = iota

	// OrphanPrune deletes the city together with its last route.
	OrphanPrune
)

// String returns the policy name.
func (p OrphanPolicy) String() string {
	if p == OrphanPrune {
		return "prune"
	}
	return "retain"
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithPruneOrphans removes cities that lose their last route.
func WithPruneOrphans() GraphOption {
	return func(g *Graph) { g.orphans = OrphanPrune }
}

// WithOrphanPolicy sets the orphan policy explicitly.
func WithOrphanPolicy(p OrphanPolicy) GraphOption {
	return func(g *Graph) { g.orphans = p }
}

// RejectedRoute is one input route Load skipped, with the reason.
type RejectedRoute struct {
	Route Route
	Err   error
}

// LoadSummary reports the outcome of Graph.Load.
type LoadSummary struct {
	Added    int
	Existing int
	Rejected []RejectedRoute
}

// routeEntry stores a route together with its insertion sequence number.
type routeEntry struct {
	route Route
	seq   uint64
}

// Graph is the mutable city/route store.
//
// mu guards every field below it. Cities and routes carry an insertion
// sequence so snapshots list them in first-insertion order. snap caches the
// View for the current epoch and is dropped by every successful mutation.
type Graph struct {
	mu sync.RWMutex

	orphans OrphanPolicy

	epoch  uint64                 // bumped on every successful mutation
	seq    uint64                 // insertion sequence generator
	cities map[string]uint64      // city ID → insertion seq
	degree map[string]int         // city ID → number of incident routes
	routes map[pairKey]*routeEntry // normalized pair → route

	snap *View
}

// NewGraph creates an empty Graph. By default orphan cities are retained.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		cities: make(map[string]uint64),
		degree: make(map[string]int),
		routes: make(map[pairKey]*routeEntry),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// OrphanPolicy reports the configured orphan policy.
func (g *Graph) OrphanPolicy() OrphanPolicy { return g.orphans }
