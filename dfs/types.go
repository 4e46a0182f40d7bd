// Package dfs defines options and errors for the depth-first engines:
// reachability and longest simple path.
package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
)

// DefaultMaxCities bounds the component size LongestPath agrees to enumerate.
const DefaultMaxCities = 64

// ctxCheckInterval is the number of expansions between context checks.
const ctxCheckInterval = 1024

var (
	// ErrGraphNil indicates a nil view was passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrSameEndpoints is returned by LongestPath when start == end.
	// A simple path cannot leave and return to the same city, so no valid path exists.
	ErrSameEndpoints = fmt.Errorf("%w: longest path needs distinct endpoints", core.ErrUnreachable)

	// ErrBadMaxCities indicates a non-positive MaxCities option.
	ErrBadMaxCities = errors.New("dfs: MaxCities must be positive")
)

// Option configures a DFS-based engine.
type Option func(*DFSOptions)

// DFSOptions holds the shared settings of Reachable and LongestPath.
type DFSOptions struct {
	// Ctx bounds LongestPath; a deadline turns into core.ErrTimeout.
	Ctx context.Context

	// MaxCities is the largest component LongestPath will enumerate.
	MaxCities int

	// OnVisit, if set, is called for each city Reachable discovers.
	OnVisit func(id string)

	err error
}

// DefaultOptions returns a background context and DefaultMaxCities.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:       context.Background(),
		MaxCities: DefaultMaxCities,
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxCities overrides the LongestPath component ceiling.
func WithMaxCities(n int) Option {
	return func(o *DFSOptions) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: got %d", ErrBadMaxCities, n)
			return
		}
		o.MaxCities = n
	}
}

// WithOnVisit installs a discovery hook for Reachable.
func WithOnVisit(fn func(id string)) Option {
	return func(o *DFSOptions) { o.OnVisit = fn }
}

func buildOptions(opts []Option) (DFSOptions, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
