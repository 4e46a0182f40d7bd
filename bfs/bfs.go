package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

type queueItem struct {
	id     string
	depth  int
	parent string // empty for root
}

type walker struct {
	view    *core.View
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS performs a breadth-first traversal from startID.
// Neighbors are expanded in route insertion order, so Order and Parent are deterministic.
func BFS(v *core.View, startID string, opts ...Option) (*BFSResult, error) {
	if v == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !v.HasCity(startID) {
		return nil, fmt.Errorf("%w: %q", core.ErrCityNotFound, startID)
	}

	n := v.CityCount()
	w := &walker{
		view:    v,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &BFSResult{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
			start:  startID,
			view:   v,
		},
	}

	w.enqueue(startID, 0, "")
	return w.res, w.loop()
}

// FewestStops returns the path from start to end with the minimum number of
// hops. Among equal-hop paths the first discovered in neighbor insertion order wins.
func FewestStops(v *core.View, start, end string, opts ...Option) (core.Path, error) {
	if v == nil {
		return core.Path{}, ErrGraphNil
	}
	if !v.HasCity(end) {
		return core.Path{}, fmt.Errorf("%w: %q", core.ErrCityNotFound, end)
	}

	res, err := BFS(v, start, append(opts, WithStopAt(end))...)
	if err != nil {
		return core.Path{}, err
	}

	return res.PathTo(end)
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d, parent: parent})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if item.id == w.opts.StopAt {
			return nil
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, nb := range w.view.Neighbors(item.id) {
		if !w.visited[nb.To] {
			w.enqueue(nb.To, next, item.id)
		}
	}
}
