package dfs

import (
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// Reachable returns every city connected to start, excluding start itself,
// in depth-first discovery order.
//
// Implementation:
//   - Stage 1: Validate the view and the start city.
//   - Stage 2: Pop from an explicit stack; a city is discovered when popped
//     the first time. Neighbors are pushed in reverse so the first-inserted
//     neighbor is explored first.
//
// An isolated start yields an empty, non-nil slice.
// Complexity: O(V + E) time, O(V + E) stack in the worst case.
func Reachable(v *core.View, start string, opts ...Option) ([]string, error) {
	if v == nil {
		return nil, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if !v.HasCity(start) {
		return nil, fmt.Errorf("%w: %q", core.ErrCityNotFound, start)
	}

	out := make([]string, 0)
	visited := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		if id != start {
			out = append(out, id)
			if o.OnVisit != nil {
				o.OnVisit(id)
			}
		}

		nbs := v.Neighbors(id)
		for i := len(nbs) - 1; i >= 0; i-- {
			if !visited[nbs[i].To] {
				stack = append(stack, nbs[i].To)
			}
		}
	}

	return out, nil
}
