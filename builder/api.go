// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// Constructor adds cities and routes to g using the resolved config.
// Constructors validate their parameters before touching g.
type Constructor func(g *core.Graph, cfg config) error

// Build creates a graph with gopts, resolves bopts, and applies cons in order.
// A constructor error is wrapped and returned immediately.
func Build(gopts []core.GraphOption, bopts []Option, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return g, nil
}

// addRoute inserts one generated route. An existing pair is left untouched,
// which lets constructors overlap.
func addRoute(g *core.Graph, method string, cfg config, i, j int) error {
	a, b := cfg.idFn(i), cfg.idFn(j)
	w := cfg.weightFn(cfg.rng)
	if _, err := g.AddRoute(a, b, w); err != nil {
		return fmt.Errorf("%s: AddRoute(%s, %s, %d): %w", method, a, b, w, err)
	}
	return nil
}
