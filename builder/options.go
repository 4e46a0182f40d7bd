// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
	"strconv"
)

// Option customizes generation.
type Option func(*config)

// config aggregates all generator knobs. It is passed by value.
type config struct {
	idFn     func(int) string
	rng      *rand.Rand
	weightFn func(*rand.Rand) int64
}

const defaultWeight int64 = 1

func newConfig(opts ...Option) config {
	cfg := config{
		idFn:     strconv.Itoa,
		weightFn: defaultWeightFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// defaultWeightFn draws 1..100 when seeded and returns 1 otherwise.
func defaultWeightFn(rng *rand.Rand) int64 {
	if rng == nil {
		return defaultWeight
	}
	return 1 + rng.Int63n(100)
}

// WithSeed makes stochastic constructors and weights reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithIDScheme sets the city naming function index -> ID. Panics on nil.
func WithIDScheme(fn func(int) string) Option {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *config) { c.idFn = fn }
}

// WithCityPrefix names cities prefix+index, e.g. "c0", "c1".
func WithCityPrefix(prefix string) Option {
	return WithIDScheme(func(i int) string { return prefix + strconv.Itoa(i) })
}

// WithWeightFn overrides the route distance generator. The function must
// return positive values. Panics on nil.
func WithWeightFn(fn func(*rand.Rand) int64) Option {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *config) { c.weightFn = fn }
}

// ConstantWeight returns a weight function that always yields w.
func ConstantWeight(w int64) func(*rand.Rand) int64 {
	return func(*rand.Rand) int64 { return w }
}
