package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// LongestPath returns the maximum-weight simple path from start to end.
//
// The search enumerates every simple path by backtracking DFS, so its cost is
// exponential in the component size. Two bounds keep it in check: the
// component of start may hold at most MaxCities cities (core.ErrLimitExceeded
// otherwise), and the context is polled every ctxCheckInterval expansions
// (a deadline becomes core.ErrTimeout). Among equal-weight paths the first
// found in neighbor insertion order is kept.
//
// Errors:
//   - ErrGraphNil, ErrBadMaxCities.
//   - core.ErrCityNotFound if an endpoint is absent.
//   - ErrSameEndpoints (a core.ErrUnreachable) if start == end.
//   - core.ErrUnreachable if end lies in another component.
func LongestPath(v *core.View, start, end string, opts ...Option) (core.Path, error) {
	if v == nil {
		return core.Path{}, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return core.Path{}, err
	}
	for _, id := range [2]string{start, end} {
		if !v.HasCity(id) {
			return core.Path{}, fmt.Errorf("%w: %q", core.ErrCityNotFound, id)
		}
	}
	if start == end {
		return core.Path{}, ErrSameEndpoints
	}

	component, err := Reachable(v, start)
	if err != nil {
		return core.Path{}, err
	}
	if !contains(component, end) {
		return core.Path{}, fmt.Errorf("%w: %s -> %s", core.ErrUnreachable, start, end)
	}
	if size := len(component) + 1; size > o.MaxCities {
		return core.Path{}, fmt.Errorf("%w: component of %q has %d cities, limit %d",
			core.ErrLimitExceeded, start, size, o.MaxCities)
	}

	s := &searcher{
		view:   v,
		ctx:    o.Ctx,
		end:    end,
		onPath: map[string]bool{start: true},
		path:   []string{start},
	}
	if err := s.extend(start, 0); err != nil {
		return core.Path{}, err
	}

	return core.Path{Cities: s.best, Weight: s.bestWeight}, nil
}

// searcher is the backtracking state of one LongestPath call.
type searcher struct {
	view   *core.View
	ctx    context.Context
	end    string
	onPath map[string]bool
	path   []string
	steps  int

	best       []string
	bestWeight int64
}

func (s *searcher) extend(at string, acc int64) error {
	s.steps++
	if s.steps%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w: longest path search stopped after %d steps", core.ErrTimeout, s.steps)
			}
			return err
		}
	}

	if at == s.end {
		if s.best == nil || acc > s.bestWeight {
			s.best = append([]string(nil), s.path...)
			s.bestWeight = acc
		}
		return nil
	}

	for _, nb := range s.view.Neighbors(at) {
		if s.onPath[nb.To] {
			continue
		}
		s.onPath[nb.To] = true
		s.path = append(s.path, nb.To)
		if err := s.extend(nb.To, acc+nb.Weight); err != nil {
			return err
		}
		s.path = s.path[:len(s.path)-1]
		s.onPath[nb.To] = false
	}

	return nil
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
