package tsp

// exactSearch enumerates every ordering of the stops with stop 0 fixed first
// and returns the cheapest open path.
//
// Partial orders whose cost already reaches the best complete cost are
// pruned; distances are positive, so pruning never discards an optimum.
// Remaining stops are tried in request order and only strictly cheaper
// orders replace the incumbent, so ties keep the first order found.
//
// Complexity: O((n-1)!) worst case, O(n) extra space.
func exactSearch(m *distanceMatrix, check func() error) ([]int, int64, error) {
	n := len(m.stops)
	s := &exact{
		m:     m,
		check: check,
		used:  make([]bool, n),
		cur:   make([]int, 1, n),
	}
	s.used[0] = true
	if err := s.extend(0); err != nil {
		return nil, 0, err
	}

	return s.best, s.bestCost, nil
}

type exact struct {
	m        *distanceMatrix
	check    func() error
	used     []bool
	cur      []int
	steps    int
	best     []int
	bestCost int64
}

func (s *exact) extend(acc int64) error {
	s.steps++
	if s.steps&deadlineMask == 0 {
		if err := s.check(); err != nil {
			return err
		}
	}

	n := len(s.used)
	if len(s.cur) == n {
		if s.best == nil || acc < s.bestCost {
			s.best = append(s.best[:0], s.cur...)
			s.bestCost = acc
		}
		return nil
	}

	last := s.cur[len(s.cur)-1]
	for next := 1; next < n; next++ {
		if s.used[next] {
			continue
		}
		nacc := acc + s.m.dist[last][next]
		if s.best != nil && nacc >= s.bestCost {
			continue
		}
		s.used[next] = true
		s.cur = append(s.cur, next)
		if err := s.extend(nacc); err != nil {
			return err
		}
		s.cur = s.cur[:len(s.cur)-1]
		s.used[next] = false
	}

	return nil
}
