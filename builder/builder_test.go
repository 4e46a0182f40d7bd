// SPDX-License-Identifier: MIT

package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cityroutes/builder"
	"github.com/katalvlaran/cityroutes/core"
)

func TestTopologies_Counts(t *testing.T) {
	cases := []struct {
		name           string
		con            builder.Constructor
		cities, routes int
	}{
		{"path", builder.Path(5), 5, 4},
		{"cycle", builder.Cycle(5), 5, 5},
		{"star", builder.Star(6), 6, 5},
		{"complete", builder.Complete(5), 5, 10},
		{"grid", builder.Grid(3, 4), 12, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.Build(nil, nil, tc.con)
			require.NoError(t, err)
			assert.Equal(t, tc.cities, g.CityCount())
			assert.Equal(t, tc.routes, g.RouteCount())
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := []builder.Option{builder.WithSeed(42), builder.WithCityPrefix("c")}
	g1, err := builder.Build(nil, opts, builder.Path(30), builder.RandomSparse(30, 0.1))
	require.NoError(t, err)
	g2, err := builder.Build(nil, []builder.Option{builder.WithSeed(42), builder.WithCityPrefix("c")},
		builder.Path(30), builder.RandomSparse(30, 0.1))
	require.NoError(t, err)

	assert.Equal(t, g1.Routes(), g2.Routes())
	assert.Equal(t, "c0", g1.Cities()[0])
	for _, r := range g1.Routes() {
		assert.True(t, r.Weight >= 1 && r.Weight <= 100, r)
	}
}

// TestBuild_Overlap lets a later constructor skip pairs an earlier one added.
func TestBuild_Overlap(t *testing.T) {
	g, err := builder.Build(nil, []builder.Option{builder.WithWeightFn(builder.ConstantWeight(3))},
		builder.Path(4), builder.Complete(4))
	require.NoError(t, err)
	assert.Equal(t, 6, g.RouteCount())
	w, ok := g.Weight("0", "1")
	require.True(t, ok)
	assert.Equal(t, int64(3), w)
}

func TestBuild_Errors(t *testing.T) {
	_, err := builder.Build(nil, nil, builder.Path(1))
	assert.ErrorIs(t, err, builder.ErrTooFewCities)

	_, err = builder.Build(nil, nil, builder.RandomSparse(5, 0.5))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)

	_, err = builder.Build(nil, []builder.Option{builder.WithSeed(1)}, builder.RandomSparse(5, 1.5))
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)

	_, err = builder.Build(nil, nil, nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	_, err = builder.Build(nil, []builder.Option{builder.WithWeightFn(builder.ConstantWeight(0))}, builder.Path(3))
	assert.ErrorIs(t, err, core.ErrInvalidWeight)

	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
}

func TestRandomSparse_Extremes(t *testing.T) {
	g, err := builder.Build(nil, nil, builder.RandomSparse(6, 1))
	require.NoError(t, err)
	assert.Equal(t, 15, g.RouteCount())

	g, err = builder.Build(nil, []builder.Option{builder.WithRand(rand.New(rand.NewSource(3)))},
		builder.RandomSparse(6, 0))
	require.NoError(t, err)
	assert.Zero(t, g.CityCount())
}

func TestBuild_PruneOption(t *testing.T) {
	g, err := builder.Build([]core.GraphOption{core.WithPruneOrphans()}, nil, builder.Star(3))
	require.NoError(t, err)
	require.NoError(t, g.RemoveRoute("0", "2"))
	assert.False(t, g.HasCity("2"))
}
