package tsp

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/dijkstra"
)

// distanceMatrix holds pairwise shortest-path distances between the stops and
// the Dijkstra trees used to expand legs into full paths.
type distanceMatrix struct {
	stops []string
	dist  [][]int64
	trees []*dijkstra.Tree
}

// buildMatrix runs one Dijkstra per stop, up to workers at a time.
// Any unreachable pair fails the whole matrix with core.ErrUnreachable.
func buildMatrix(ctx context.Context, v *core.View, stops []string, workers int) (*distanceMatrix, error) {
	n := len(stops)
	m := &distanceMatrix{
		stops: stops,
		dist:  make([][]int64, n),
		trees: make([]*dijkstra.Tree, n),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range stops {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tree, err := dijkstra.Distances(v, stops[i])
			if err != nil {
				return err
			}
			row := make([]int64, n)
			for j, to := range stops {
				d, ok := tree.DistanceTo(to)
				if !ok {
					return fmt.Errorf("%w: %s -> %s", core.ErrUnreachable, stops[i], to)
				}
				row[j] = d
			}
			m.dist[i] = row
			m.trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// cost sums the leg distances of an open path given as stop indices.
func (m *distanceMatrix) cost(order []int) int64 {
	var total int64
	for i := 1; i < len(order); i++ {
		total += m.dist[order[i-1]][order[i]]
	}
	return total
}

// expand concatenates the shortest path of every leg, dropping the repeated
// junction city between consecutive legs.
func (m *distanceMatrix) expand(order []int) ([]string, error) {
	path := []string{m.stops[order[0]]}
	for i := 1; i < len(order); i++ {
		leg, err := m.trees[order[i-1]].PathTo(m.stops[order[i]])
		if err != nil {
			return nil, err
		}
		path = append(path, leg.Cities[1:]...)
	}
	return path, nil
}
