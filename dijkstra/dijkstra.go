package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// ShortestPath returns the minimum-weight path from start to end.
//
// start == end yields the single-city path with weight 0. Ties between
// equal-weight paths are broken deterministically by neighbor insertion order
// (strict-less relaxation, FIFO among equal heap keys).
//
// Errors:
//   - ErrNilView, ErrBadMaxDistance.
//   - core.ErrCityNotFound if start or end is absent.
//   - core.ErrUnreachable if no path exists.
func ShortestPath(v *core.View, start, end string, opts ...Option) (core.Path, error) {
	if v == nil {
		return core.Path{}, ErrNilView
	}
	for _, id := range [2]string{start, end} {
		if !v.HasCity(id) {
			return core.Path{}, fmt.Errorf("%w: %q", core.ErrCityNotFound, id)
		}
	}
	if start == end {
		return core.Path{Cities: []string{start}}, nil
	}

	t, err := run(v, start, end, opts)
	if err != nil {
		return core.Path{}, err
	}

	return t.PathTo(end)
}

// Distances computes the full shortest-path tree rooted at source.
func Distances(v *core.View, source string, opts ...Option) (*Tree, error) {
	if v == nil {
		return nil, ErrNilView
	}
	if !v.HasCity(source) {
		return nil, fmt.Errorf("%w: %q", core.ErrCityNotFound, source)
	}

	return run(v, source, "", opts)
}

func run(v *core.View, source, stopAt string, opts []Option) (*Tree, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	n := v.CityCount()
	r := &runner{
		view:    v,
		options: cfg,
		stopAt:  stopAt,
		tree: &Tree{
			Source: source,
			Dist:   make(map[string]int64, n),
			Prev:   make(map[string]string, n),
		},
		visited: make(map[string]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init()
	r.process()

	// Only finalized cities belong to the tree.
	for id := range r.tree.Dist {
		if !r.visited[id] {
			delete(r.tree.Dist, id)
			delete(r.tree.Prev, id)
		}
	}

	return r.tree, nil
}

// runner holds the mutable state of one Dijkstra execution.
type runner struct {
	view    *core.View
	options Options
	stopAt  string          // optional early-exit target ("" = explore all)
	tree    *Tree           // tentative distances and predecessors
	visited map[string]bool // finalized cities
	pq      nodePQ
	pushSeq uint64
}

func (r *runner) init() {
	src := r.tree.Source
	r.tree.Dist[src] = 0
	heap.Init(&r.pq)
	r.push(src, 0)
}

func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue // stale entry
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if u == r.stopAt {
			return
		}
		r.relax(u)
	}
}

// relax tries to improve every neighbor of u. Routes are undirected, so every
// adjacency entry is an outgoing edge of u.
func (r *runner) relax(u string) {
	du := r.tree.Dist[u]
	for _, nb := range r.view.Neighbors(u) {
		if r.visited[nb.To] {
			continue
		}
		nd := du + nb.Weight
		if nd > r.options.MaxDistance {
			continue
		}
		if cur, seen := r.tree.Dist[nb.To]; seen && nd >= cur {
			continue
		}
		r.tree.Dist[nb.To] = nd
		r.tree.Prev[nb.To] = u
		r.push(nb.To, nd)
	}
}

func (r *runner) push(id string, dist int64) {
	r.pushSeq++
	heap.Push(&r.pq, &nodeItem{id: id, dist: dist, seq: r.pushSeq})
}

// nodeItem is one priority-queue entry.
type nodeItem struct {
	id   string // city ID
	dist int64  // tentative distance from source
	seq  uint64 // push order, breaks ties FIFO
}

// nodePQ implements heap.Interface as a min-heap on (dist, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x (must be *nodeItem) to the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
