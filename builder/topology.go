// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// Path chains n cities: 0-1-2-...-(n-1). n >= 2.
// Complexity: O(n).
func Path(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("Path: n=%d < 2: %w", n, ErrTooFewCities)
		}
		for i := 0; i+1 < n; i++ {
			if err := addRoute(g, "Path", cfg, i, i+1); err != nil {
				return err
			}
		}
		return nil
	}
}

// Cycle is Path(n) closed by a route (n-1)-0. n >= 3.
// Complexity: O(n).
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 3 {
			return fmt.Errorf("Cycle: n=%d < 3: %w", n, ErrTooFewCities)
		}
		if err := Path(n)(g, cfg); err != nil {
			return err
		}
		return addRoute(g, "Cycle", cfg, n-1, 0)
	}
}

// Star joins city 0 to each of the other n-1 cities. n >= 2.
// Complexity: O(n).
func Star(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("Star: n=%d < 2: %w", n, ErrTooFewCities)
		}
		for i := 1; i < n; i++ {
			if err := addRoute(g, "Star", cfg, 0, i); err != nil {
				return err
			}
		}
		return nil
	}
}

// Complete joins every pair of n cities. n >= 2.
// Complexity: O(n²).
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("Complete: n=%d < 2: %w", n, ErrTooFewCities)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addRoute(g, "Complete", cfg, i, j); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Grid lays rows×cols cities out row-major (index r*cols+c) and joins each to
// its right and lower neighbour. rows*cols >= 2.
// Complexity: O(rows*cols).
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if rows < 1 || cols < 1 || rows*cols < 2 {
			return fmt.Errorf("Grid: rows=%d cols=%d: %w", rows, cols, ErrTooFewCities)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					if err := addRoute(g, "Grid", cfg, u, u+1); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := addRoute(g, "Grid", cfg, u, u+cols); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
}

// RandomSparse includes each pair {i, j} of n cities independently with
// probability p. Pairs are tried in (i asc, j asc) order, so the result is
// fixed for a fixed seed. Requires an RNG when 0 < p < 1.
// Complexity: O(n²) trials.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("RandomSparse: n=%d < 2: %w", n, ErrTooFewCities)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("RandomSparse: p=%.6f: %w", p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("RandomSparse: %w", ErrNeedRandSource)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if p < 1 && (p == 0 || cfg.rng.Float64() >= p) {
					continue
				}
				if err := addRoute(g, "RandomSparse", cfg, i, j); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
