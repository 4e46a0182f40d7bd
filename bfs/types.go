package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

var (
	// ErrGraphNil is returned if a nil view pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures a BFS run.
type Option func(*BFSOptions)

// BFSOptions holds the configurable hooks and limits of a traversal.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a city. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id string, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// StopAt, if non-empty, ends the traversal once that city is dequeued.
	StopAt string

	err error
}

// DefaultOptions returns a no-op configuration without depth limit.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:     context.Background(),
		OnVisit: func(string, int) error { return nil },
	}
}

// WithContext sets the context checked between dequeues.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a visit hook.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits exploration depth; 0 disables the limit.
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithStopAt ends the traversal as soon as id is visited.
func WithStopAt(id string) Option {
	return func(o *BFSOptions) { o.StopAt = id }
}

// BFSResult holds the traversal order, hop depth, and parent of each visited city.
type BFSResult struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string

	start string
	view  *core.View
}

// PathTo reconstructs the minimum-hop path from the start to dest.
// The path weight is the sum of the route weights along it.
func (r *BFSResult) PathTo(dest string) (core.Path, error) {
	if _, ok := r.Depth[dest]; !ok {
		return core.Path{}, fmt.Errorf("%w: %s -> %s", core.ErrUnreachable, r.start, dest)
	}

	cities := make([]string, r.Depth[dest]+1)
	for i, at := len(cities)-1, dest; i >= 0; i-- {
		cities[i] = at
		at = r.Parent[at]
	}
	w, _ := core.PathWeight(r.view, cities)

	return core.Path{Cities: cities, Weight: w}, nil
}
