package mst

import (
	"errors"

	"github.com/katalvlaran/cityroutes/core"
)

// ErrGraphNil indicates a nil view was passed.
var ErrGraphNil = errors.New("mst: graph is nil")

// ErrUnknownMethod indicates an unsupported MSTOptions.Method.
var ErrUnknownMethod = errors.New("mst: unknown method")

// MethodPrim selects Prim's algorithm (one heap-driven tree per component).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (default).
const MethodKruskal = "kruskal"

// MSTOptions configures Compute.
type MSTOptions struct {
	// Method is MethodKruskal or MethodPrim.
	Method string

	// RequireConnected turns a spanning forest into core.ErrDisconnected.
	RequireConnected bool
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod selects the algorithm.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// WithRequireConnected rejects graphs with more than one component.
func WithRequireConnected() Option {
	return func(opts *MSTOptions) {
		opts.RequireConnected = true
	}
}

// DefaultOptions returns Kruskal without the connectivity requirement.
func DefaultOptions() MSTOptions {
	return MSTOptions{
		Method: MethodKruskal,
	}
}

// Network is a minimum spanning forest.
//
// Edges lists the chosen routes, TotalCost their summed weight, and
// Components the number of trees (an isolated city is a tree by itself).
type Network struct {
	Edges      []core.Route
	TotalCost  int64
	Components int
}

// Connected reports whether the forest is a single spanning tree.
func (n Network) Connected() bool { return n.Components == 1 }

// Compute runs the configured method on v.
func Compute(v *core.View, opts ...Option) (Network, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		net Network
		err error
	)
	switch o.Method {
	case MethodKruskal:
		net, err = Kruskal(v)
	case MethodPrim:
		net, err = Prim(v)
	default:
		return Network{}, ErrUnknownMethod
	}
	if err != nil {
		return Network{}, err
	}
	if o.RequireConnected && !net.Connected() {
		return Network{}, disconnected(net.Components)
	}

	return net, nil
}
