// Package dijkstra defines the options and result types for Dijkstra's
// shortest-path algorithm over a core.View.
//
// Complexity:
//
//	– Time:  O((V + E) log V)   where V = |cities|, E = |routes|
//	   • Each city is finalized at most once (V pops that do work).
//	   • Each relaxation may push into the heap (up to 2E pushes, routes are undirected).
//	– Space: O(V + E)
//	   • O(V) for the distance and predecessor maps.
//	   • O(E) heap entries in the worst case (lazy decrease-key).
//
// Options:
//
//	– MaxDistance: optional cap; cities farther than this are left unreached.
//
// Errors (sentinel):
//
//	– ErrNilView          if the provided view pointer is nil.
//	– ErrBadMaxDistance   if MaxDistance < 0.
//	– core.ErrCityNotFound if a requested endpoint is absent.
//	– core.ErrUnreachable  if the destination cannot be reached.
package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/cityroutes/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilView indicates that a nil *core.View was passed.
	ErrNilView = errors.New("dijkstra: view is nil")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Options configures a Dijkstra run.
//
// MaxDistance – cities whose shortest distance would exceed this value are
// not explored. Default is math.MaxInt64 (no cap).
type Options struct {
	MaxDistance int64

	err error
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxDistance sets a maximum distance threshold.
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = fmt.Errorf("%w: got %d", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with no distance cap.
func DefaultOptions() Options {
	return Options{MaxDistance: math.MaxInt64}
}

// Tree is a single-source shortest-path tree.
//
// Dist holds the final distance of every reached city (the source maps to 0);
// Prev maps every reached city except the source to its predecessor.
type Tree struct {
	Source string
	Dist   map[string]int64
	Prev   map[string]string
}

// DistanceTo returns the shortest distance to id and whether it was reached.
func (t *Tree) DistanceTo(id string) (int64, bool) {
	d, ok := t.Dist[id]
	return d, ok
}

// PathTo reconstructs the shortest path from the source to dest.
// Returns core.ErrUnreachable if dest was not reached.
func (t *Tree) PathTo(dest string) (core.Path, error) {
	d, ok := t.Dist[dest]
	if !ok {
		return core.Path{}, fmt.Errorf("%w: %s -> %s", core.ErrUnreachable, t.Source, dest)
	}

	var rev []string
	for at := dest; ; at = t.Prev[at] {
		rev = append(rev, at)
		if at == t.Source {
			break
		}
	}
	cities := make([]string, len(rev))
	for i, id := range rev {
		cities[len(rev)-1-i] = id
	}

	return core.Path{Cities: cities, Weight: d}, nil
}
