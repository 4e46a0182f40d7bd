package tsp

// nearestNeighbor builds an open path from stop 0 by repeatedly moving to the
// closest unvisited stop (ties go to the earlier requested stop).
func nearestNeighbor(m *distanceMatrix) []int {
	n := len(m.stops)
	order := make([]int, 1, n)
	used := make([]bool, n)
	used[0] = true
	for len(order) < n {
		last := order[len(order)-1]
		next := -1
		for j := 1; j < n; j++ {
			if used[j] {
				continue
			}
			if next < 0 || m.dist[last][j] < m.dist[last][next] {
				next = j
			}
		}
		used[next] = true
		order = append(order, next)
	}
	return order
}

// twoOpt improves an open path in place with first-improvement 2-opt moves.
//
// A move reverses order[i..k] for 1 ≤ i < k ≤ n−1, keeping order[0] fixed.
// Because the path is open, reversing a suffix (k == n−1) only replaces the
// arc entering order[i]. Shortest-path distances are symmetric, so the
// reversed interior keeps its cost.
//
// maxIters caps accepted moves (0 = until no move improves). check is polled
// every deadlineMask+1 candidate evaluations.
func twoOpt(m *distanceMatrix, order []int, maxIters int, check func() error) error {
	n := len(order)
	d := m.dist
	accepted := 0
	step := 0
	for {
		improved := false
		for i := 1; i <= n-2; i++ {
			for k := i + 1; k <= n-1; k++ {
				step++
				if step&deadlineMask == 0 {
					if err := check(); err != nil {
						return err
					}
				}

				a, b, c := order[i-1], order[i], order[k]
				delta := d[a][c] - d[a][b]
				if k < n-1 {
					e := order[k+1]
					delta += d[b][e] - d[c][e]
				}
				if delta >= 0 {
					continue
				}

				reverse(order, i, k)
				improved = true
				accepted++
				if maxIters > 0 && accepted >= maxIters {
					return nil
				}
			}
		}
		if !improved {
			return nil
		}
	}
}

func reverse(s []int, i, k int) {
	for i < k {
		s[i], s[k] = s[k], s[i]
		i++
		k--
	}
}
