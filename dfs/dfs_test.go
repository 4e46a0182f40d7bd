package dfs_test

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/dfs"
	"github.com/katalvlaran/cityroutes/dijkstra"
)

// complete builds K_n over "0".."n-1" with weight i+j+1.
func complete(n int) *core.View {
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			_, _ = g.AddRoute(fmt.Sprint(i), fmt.Sprint(j), int64(i+j+1))
		}
	}
	return g.Snapshot()
}

func TestReachable(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddRoute("A", "B", 1)
	_, _ = g.AddRoute("A", "C", 1)
	_, _ = g.AddRoute("B", "D", 1)
	_, _ = g.AddRoute("E", "F", 1)
	v := g.Snapshot()

	got, err := dfs.Reachable(v, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D", "C"}, got, "depth-first discovery order")

	var seen []string
	_, err = dfs.Reachable(v, "E", dfs.WithOnVisit(func(id string) { seen = append(seen, id) }))
	require.NoError(t, err)
	assert.Equal(t, []string{"F"}, seen)

	_, err = dfs.Reachable(v, "Q")
	require.ErrorIs(t, err, core.ErrCityNotFound)
	_, err = dfs.Reachable(nil, "A")
	require.ErrorIs(t, err, dfs.ErrGraphNil)
}

// TestReachable_Isolated covers a city retained after losing its last route.
func TestReachable_Isolated(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddRoute("A", "B", 1)
	require.NoError(t, g.RemoveRoute("A", "B"))

	got, err := dfs.Reachable(g.Snapshot(), "A")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLongestPath_Triangle(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddRoute("X", "Y", 4)
	_, _ = g.AddRoute("Y", "Z", 3)
	_, _ = g.AddRoute("X", "Z", 10)
	v := g.Snapshot()

	p, err := dfs.LongestPath(v, "X", "Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Z"}, p.Cities)
	assert.Equal(t, int64(10), p.Weight)

	p, err = dfs.LongestPath(v, "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Z", "Y"}, p.Cities)
	assert.Equal(t, int64(13), p.Weight)
}

func TestLongestPath_Errors(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddRoute("A", "B", 1)
	_, _ = g.AddRoute("C", "D", 1)
	v := g.Snapshot()

	_, err := dfs.LongestPath(v, "A", "A")
	require.ErrorIs(t, err, dfs.ErrSameEndpoints)
	require.ErrorIs(t, err, core.ErrUnreachable)

	_, err = dfs.LongestPath(v, "A", "D")
	require.ErrorIs(t, err, core.ErrUnreachable)

	_, err = dfs.LongestPath(v, "A", "Q")
	require.ErrorIs(t, err, core.ErrCityNotFound)

	_, err = dfs.LongestPath(v, "A", "B", dfs.WithMaxCities(0))
	require.ErrorIs(t, err, dfs.ErrBadMaxCities)

	_, err = dfs.LongestPath(nil, "A", "B")
	require.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestLongestPath_LimitExceeded(t *testing.T) {
	_, err := dfs.LongestPath(complete(6), "0", "5", dfs.WithMaxCities(5))
	require.ErrorIs(t, err, core.ErrLimitExceeded)
}

func TestLongestPath_Timeout(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := dfs.LongestPath(complete(11), "0", "10", dfs.WithContext(ctx))
	require.ErrorIs(t, err, core.ErrTimeout)
}

// TestLongestPath_Properties checks longest ≥ shortest and that the returned
// path is simple and its weight matches its routes.
func TestLongestPath_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 25; trial++ {
		g := core.NewGraph()
		for i := 0; i < 7; i++ {
			for j := i + 1; j < 7; j++ {
				if rng.Intn(3) > 0 {
					_, _ = g.AddRoute(fmt.Sprint(i), fmt.Sprint(j), int64(1+rng.Intn(9)))
				}
			}
		}
		v := g.Snapshot()
		if !v.HasCity("0") || !v.HasCity("6") {
			continue
		}

		lp, err := dfs.LongestPath(v, "0", "6")
		sp, spErr := dijkstra.ShortestPath(v, "0", "6")
		if spErr != nil {
			require.ErrorIs(t, err, core.ErrUnreachable)
			continue
		}
		require.NoError(t, err)
		assert.GreaterOrEqual(t, lp.Weight, sp.Weight)

		w, ok := core.PathWeight(v, lp.Cities)
		require.True(t, ok)
		assert.Equal(t, lp.Weight, w)

		uniq := append([]string(nil), lp.Cities...)
		sort.Strings(uniq)
		for i := 1; i < len(uniq); i++ {
			require.NotEqual(t, uniq[i-1], uniq[i], "path must be simple")
		}
	}
}
