package tsp

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// Plan orders the requested cities into a short open path starting at cities[0].
//
// Implementation:
//   - Stage 1: Validate the request (at least two distinct, known cities).
//   - Stage 2: Build the pairwise shortest-path matrix concurrently.
//   - Stage 3: Up to ExactLimit stops, enumerate every order (exact);
//     above it, nearest neighbour followed by 2-opt (approximate).
//   - Stage 4: Expand the order into the concatenated city path.
//
// Errors:
//   - ErrGraphNil, ErrBadOption.
//   - core.ErrInvalidTour for fewer than two or duplicate cities.
//   - core.ErrCityNotFound for an unknown city.
//   - core.ErrUnreachable if any two requested cities are disconnected.
//   - core.ErrTimeout if the context deadline passes mid-search.
func Plan(v *core.View, cities []string, opts ...Option) (Tour, error) {
	if v == nil {
		return Tour{}, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Tour{}, o.err
	}
	if err := validate(v, cities); err != nil {
		return Tour{}, err
	}

	stops := append([]string(nil), cities...)
	m, err := buildMatrix(o.Ctx, v, stops, o.Workers)
	if err != nil {
		return Tour{}, timeoutOr(err)
	}

	check := func() error { return timeoutOr(o.Ctx.Err()) }
	var (
		order []int
		exact = len(stops) <= o.ExactLimit
	)
	if exact {
		order, _, err = exactSearch(m, check)
	} else {
		order = nearestNeighbor(m)
		err = twoOpt(m, order, o.TwoOptMaxIters, check)
	}
	if err != nil {
		return Tour{}, err
	}

	path, err := m.expand(order)
	if err != nil {
		return Tour{}, err
	}
	t := Tour{
		Stops:    make([]string, len(order)),
		Path:     path,
		Distance: m.cost(order),
		Exact:    exact,
	}
	for i, idx := range order {
		t.Stops[i] = stops[idx]
	}

	return t, nil
}

func validate(v *core.View, cities []string) error {
	if len(cities) < 2 {
		return fmt.Errorf("%w: need at least 2 cities, got %d", core.ErrInvalidTour, len(cities))
	}
	seen := make(map[string]bool, len(cities))
	for _, c := range cities {
		if seen[c] {
			return fmt.Errorf("%w: duplicate city %q", core.ErrInvalidTour, c)
		}
		seen[c] = true
	}
	for _, c := range cities {
		if !v.HasCity(c) {
			return fmt.Errorf("%w: %q", core.ErrCityNotFound, c)
		}
	}
	return nil
}

// timeoutOr maps a context deadline onto core.ErrTimeout.
func timeoutOr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: tour search", core.ErrTimeout)
	}
	return err
}
