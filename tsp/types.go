package tsp

import (
	"context"
	"errors"
	"fmt"
	"runtime"
)

// DefaultExactLimit is the largest stop count solved by exact enumeration.
const DefaultExactLimit = 9

// deadlineMask throttles context checks to every 2048 steps.
const deadlineMask = 2047

var (
	// ErrGraphNil indicates a nil view was passed.
	ErrGraphNil = errors.New("tsp: graph is nil")

	// ErrBadOption indicates an invalid Option value.
	ErrBadOption = errors.New("tsp: invalid option")
)

// Options configures Plan.
type Options struct {
	// Ctx bounds the search; a deadline becomes core.ErrTimeout.
	Ctx context.Context

	// ExactLimit is the largest stop count searched exhaustively.
	// Larger requests use nearest neighbour + 2-opt.
	ExactLimit int

	// TwoOptMaxIters caps accepted 2-opt moves; 0 means until a local optimum.
	TwoOptMaxIters int

	// Workers bounds concurrent Dijkstra runs while building the distance matrix.
	Workers int

	err error
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the exact limit DefaultExactLimit and GOMAXPROCS workers.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		ExactLimit: DefaultExactLimit,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithExactLimit overrides the exact-search ceiling. It must be at least 2.
func WithExactLimit(n int) Option {
	return func(o *Options) {
		if n < 2 {
			o.err = fmt.Errorf("%w: ExactLimit must be >= 2, got %d", ErrBadOption, n)
			return
		}
		o.ExactLimit = n
	}
}

// WithTwoOptMaxIters caps the number of accepted 2-opt moves.
func WithTwoOptMaxIters(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: TwoOptMaxIters must be >= 0, got %d", ErrBadOption, n)
			return
		}
		o.TwoOptMaxIters = n
	}
}

// WithWorkers bounds matrix-building concurrency.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// Tour is the result of Plan.
//
// Stops is the visiting order of the requested cities, starting at the first
// requested city. Path expands every leg into its shortest route, so it may
// pass through cities that were not requested and may revisit a city.
// Distance is the sum of the shortest-path distances of the legs.
// Exact reports whether the order is proven optimal among open paths from
// the fixed start.
type Tour struct {
	Stops    []string
	Path     []string
	Distance int64
	Exact    bool
}
