package pathfinder_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/pathfinder"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFinder(t testing.TB, routes ...core.Route) *pathfinder.PathFinder {
	t.Helper()
	p := pathfinder.New(pathfinder.WithLogger(quietLogger()))
	for _, r := range routes {
		res := p.AddRoute(context.Background(), r.From, r.To, r.Weight)
		require.True(t, res.Success, res.Message)
	}
	return p
}

func xyz(t testing.TB) *pathfinder.PathFinder {
	return newFinder(t,
		core.Route{From: "X", To: "Y", Weight: 5},
		core.Route{From: "Y", To: "Z", Weight: 3},
		core.Route{From: "X", To: "Z", Weight: 10},
	)
}

func TestPathFinder_XYZScenario(t *testing.T) {
	ctx := context.Background()
	p := xyz(t)

	sp := p.ShortestPath(ctx, "X", "Z")
	require.True(t, sp.Found, sp.Message)
	assert.Equal(t, []string{"X", "Y", "Z"}, sp.Path)
	assert.Equal(t, int64(8), sp.TotalWeight)

	lp := p.LongestPath(ctx, "X", "Z")
	require.True(t, lp.Found, lp.Message)
	assert.Equal(t, []string{"X", "Z"}, lp.Path)
	assert.Equal(t, int64(10), lp.TotalWeight)
	assert.GreaterOrEqual(t, lp.TotalWeight, sp.TotalWeight)

	fs := p.FewestStops(ctx, "X", "Z")
	require.True(t, fs.Found, fs.Message)
	assert.Equal(t, []string{"X", "Z"}, fs.Path)
	assert.Equal(t, 1, fs.StopCount)

	net := p.CheapestNetwork(ctx)
	require.True(t, net.Found, net.Message)
	assert.Equal(t, int64(8), net.TotalCost)
	assert.ElementsMatch(t, []pathfinder.NetworkEdge{
		{From: "Y", To: "Z", Weight: 3},
		{From: "X", To: "Y", Weight: 5},
	}, net.Edges)
	assert.Equal(t, "Cheapest network found successfully.", net.Message)
}

func TestPathFinder_TourABC(t *testing.T) {
	p := newFinder(t,
		core.Route{From: "A", To: "B", Weight: 1},
		core.Route{From: "B", To: "C", Weight: 1},
		core.Route{From: "A", To: "C", Weight: 5},
	)

	res := p.PlanTour(context.Background(), []string{"A", "B", "C"})
	require.True(t, res.Found, res.Message)
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, int64(2), res.TotalDistance)
	assert.True(t, res.Exact)
	assert.Equal(t, "Optimal tour planned successfully.", res.Message)
}

func TestPathFinder_TourFailures(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t,
		core.Route{From: "A", To: "B", Weight: 1},
		core.Route{From: "C", To: "D", Weight: 1},
	)

	cases := []struct {
		name   string
		cities []string
		msg    string
	}{
		{"empty", nil, "No cities provided."},
		{"single", []string{"A"}, "A tour needs at least two distinct cities."},
		{"duplicate", []string{"A", "A"}, "A tour needs at least two distinct cities."},
		{"missing", []string{"A", "Q", "B"}, "City 'Q' not found in graph."},
		{"disconnected", []string{"A", "C"}, "Could not find a path visiting all specified cities."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := p.PlanTour(ctx, tc.cities)
			assert.False(t, res.Found)
			assert.Equal(t, tc.msg, res.Message)
			assert.NotNil(t, res.Path)
			assert.Empty(t, res.Path)
		})
	}
}

// TestPathFinder_IsolatedCity keeps a city without routes queryable.
func TestPathFinder_IsolatedCity(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t,
		core.Route{From: "Isolated", To: "A", Weight: 4},
		core.Route{From: "A", To: "B", Weight: 2},
	)
	require.True(t, p.RemoveRoute(ctx, "Isolated", "A").Success)

	res := p.ReachableCities(ctx, "Isolated")
	assert.NotNil(t, res.Cities)
	assert.Empty(t, res.Cities)
	assert.Equal(t, "Found 0 reachable cities", res.Message)
	assert.Contains(t, p.Cities(), "Isolated")

	res = p.ReachableCities(ctx, "A")
	assert.Equal(t, []string{"B"}, res.Cities)

	res = p.ReachableCities(ctx, "Nowhere")
	assert.Empty(t, res.Cities)
	assert.Equal(t, "City 'Nowhere' not found.", res.Message)
}

func TestPathFinder_AddIdempotent(t *testing.T) {
	ctx := context.Background()
	p := pathfinder.New(pathfinder.WithLogger(quietLogger()))

	first := p.AddRoute(ctx, "A", "B", 7)
	require.True(t, first.Success)
	assert.Equal(t, "Route added: A <-> B (7 km)", first.Message)
	before := p.Routes()

	second := p.AddRoute(ctx, "A", "B", 7)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "already exists")
	assert.Equal(t, before, p.Routes())

	// The reversed pair is the same route and keeps its weight.
	third := p.AddRoute(ctx, "B", "A", 99)
	assert.False(t, third.Success)
	assert.Equal(t, before, p.Routes())
}

func TestPathFinder_UpdateRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t, core.Route{From: "A", To: "B", Weight: 3})

	res := p.UpdateRoute(ctx, "A", "B", 9)
	require.True(t, res.Success)
	assert.Equal(t, "Route updated: A <-> B (9 km)", res.Message)
	assert.Equal(t, []core.Route{{From: "A", To: "B", Weight: 9}}, p.Routes())

	res = p.RemoveRoute(ctx, "B", "A")
	require.True(t, res.Success)
	assert.Equal(t, "Route removed: B <-> A", res.Message)
	assert.Empty(t, p.Routes())

	res = p.RemoveRoute(ctx, "A", "B")
	assert.False(t, res.Success)
	assert.Equal(t, "Route not found.", res.Message)

	res = p.UpdateRoute(ctx, "A", "B", 4)
	assert.False(t, res.Success)
	assert.Equal(t, "Route not found. Use 'Add Route' to create it.", res.Message)
}

func TestPathFinder_MutationRejections(t *testing.T) {
	ctx := context.Background()
	p := pathfinder.New(pathfinder.WithLogger(quietLogger()))

	assert.Equal(t, "Distance must be positive.", p.AddRoute(ctx, "A", "B", 0).Message)
	assert.Equal(t, "Distance must be positive.", p.AddRoute(ctx, "A", "B", -3).Message)
	assert.Equal(t, "Distance must not exceed 1099511627776.", p.AddRoute(ctx, "A", "B", core.MaxWeight+1).Message)
	assert.Equal(t, "Distance must not exceed 1099511627776.", p.AddRoute(ctx, "A", "B", math.MaxInt64).Message)
	assert.Equal(t, "A route must connect two different cities.", p.AddRoute(ctx, "A", "A", 1).Message)
	assert.Equal(t, "City names must not be empty.", p.AddRoute(ctx, "", "A", 1).Message)
	assert.Zero(t, p.Graph().Epoch())
	assert.Empty(t, p.Cities())
}

func TestPathFinder_QueryFailures(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t,
		core.Route{From: "A", To: "B", Weight: 1},
		core.Route{From: "C", To: "D", Weight: 1},
	)

	sp := p.ShortestPath(ctx, "A", "Q")
	assert.False(t, sp.Found)
	assert.Equal(t, "One or both cities not found.", sp.Message)
	assert.NotNil(t, sp.Path)

	sp = p.ShortestPath(ctx, "A", "C")
	assert.False(t, sp.Found)
	assert.Equal(t, "No path found.", sp.Message)

	sp = p.ShortestPath(ctx, "A", "A")
	assert.True(t, sp.Found)
	assert.Equal(t, []string{"A"}, sp.Path)
	assert.Equal(t, "Start and destination are the same.", sp.Message)

	lp := p.LongestPath(ctx, "A", "A")
	assert.False(t, lp.Found)
	assert.Contains(t, lp.Message, "same")

	fs := p.FewestStops(ctx, "A", "D")
	assert.False(t, fs.Found)
	assert.Equal(t, "No path exists between these cities.", fs.Message)
}

// TestPathFinder_DisconnectedNetwork reports a spanning forest as success.
func TestPathFinder_DisconnectedNetwork(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t,
		core.Route{From: "A", To: "B", Weight: 1},
		core.Route{From: "C", To: "D", Weight: 2},
	)

	res := p.CheapestNetwork(ctx)
	require.True(t, res.Found)
	assert.Equal(t, 2, res.Components)
	assert.Equal(t, int64(3), res.TotalCost)
	assert.Len(t, res.Edges, 2)
	assert.Contains(t, res.Message, "2 components")

	empty := pathfinder.New(pathfinder.WithLogger(quietLogger())).CheapestNetwork(ctx)
	assert.False(t, empty.Found)
	assert.Equal(t, "Graph is empty.", empty.Message)
	assert.NotNil(t, empty.Edges)
}

// TestPathFinder_CacheInvalidation never serves a result from before a mutation.
func TestPathFinder_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	p := xyz(t)

	first := p.ShortestPath(ctx, "X", "Z")
	again := p.ShortestPath(ctx, "X", "Z")
	assert.Equal(t, first, again)
	assert.Equal(t, 1, p.CacheStats().Hits)

	require.True(t, p.UpdateRoute(ctx, "X", "Z", 2).Success)
	after := p.ShortestPath(ctx, "X", "Z")
	assert.Equal(t, []string{"X", "Z"}, after.Path)
	assert.Equal(t, int64(2), after.TotalWeight)
	assert.Equal(t, p.Graph().Epoch(), p.CacheStats().Epoch)
}

func TestPathFinder_CacheDisabled(t *testing.T) {
	p := pathfinder.New(pathfinder.WithLogger(quietLogger()), pathfinder.WithCacheSize(0))
	_ = p.AddRoute(context.Background(), "A", "B", 1)
	_ = p.ShortestPath(context.Background(), "A", "B")
	_ = p.ShortestPath(context.Background(), "A", "B")
	assert.Zero(t, p.CacheStats())
}

func TestPathFinder_LongestPathLimit(t *testing.T) {
	ctx := context.Background()
	p := pathfinder.New(
		pathfinder.WithLogger(quietLogger()),
		pathfinder.WithLimits(pathfinder.Limits{LongestPathMaxCities: 3}),
	)
	for i := 0; i < 4; i++ {
		_ = p.AddRoute(ctx, fmt.Sprint(i), fmt.Sprint(i+1), 1)
	}

	res := p.LongestPath(ctx, "0", "4")
	assert.False(t, res.Found)
	assert.Equal(t, "The network is too large for this search.", res.Message)
	assert.Equal(t, 3, p.Limits().LongestPathMaxCities)
	assert.Equal(t, 5*time.Second, p.Limits().QueryTimeout)
}

func TestPathFinder_LoadRoutes(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t, core.Route{From: "Old", To: "Town", Weight: 1})

	res := p.LoadRoutes(ctx, []core.Route{
		{From: "A", To: "B", Weight: 1},
		{From: "B", To: "A", Weight: 2},
		{From: "B", To: "C", Weight: 0},
	}, true)
	assert.False(t, res.Success)
	assert.Equal(t, "Loaded 1 routes (1 already present, 1 invalid)", res.Message)
	assert.Equal(t, []string{"A", "B"}, p.Cities())

	res = p.Clear(ctx)
	assert.True(t, res.Success)
	assert.Equal(t, "All data cleared", res.Message)
	assert.Equal(t, pathfinder.GraphSnapshot{Cities: []string{}, Routes: []core.Route{}}, p.Snapshot())
}

// TestPathFinder_MaxWeightTotals loads routes at the weight ceiling and checks
// every total stays exact.
func TestPathFinder_MaxWeightTotals(t *testing.T) {
	ctx := context.Background()
	top := core.MaxWeight
	p := newFinder(t,
		core.Route{From: "A", To: "B", Weight: top},
		core.Route{From: "B", To: "C", Weight: top},
		core.Route{From: "A", To: "C", Weight: 5},
	)

	long := p.LongestPath(ctx, "A", "C")
	require.True(t, long.Found, long.Message)
	assert.Equal(t, []string{"A", "B", "C"}, long.Path)
	assert.Equal(t, 2*top, long.TotalWeight)

	short := p.ShortestPath(ctx, "A", "B")
	assert.Equal(t, []string{"A", "B"}, short.Path)
	assert.Equal(t, top, short.TotalWeight)

	tour := p.PlanTour(ctx, []string{"B", "A", "C"})
	require.True(t, tour.Found, tour.Message)
	assert.Positive(t, tour.TotalDistance)
	assert.Equal(t, top+5, tour.TotalDistance)

	network := p.CheapestNetwork(ctx)
	assert.Equal(t, top+5, network.TotalCost)
}

// TestPathFinder_LoadRoutesAtomic checks a replacing load publishes one epoch
// and rejects oversized distances.
func TestPathFinder_LoadRoutesAtomic(t *testing.T) {
	ctx := context.Background()
	p := newFinder(t, core.Route{From: "Old", To: "Town", Weight: 1})
	epoch := p.Graph().Epoch()

	res := p.LoadRoutes(ctx, []core.Route{
		{From: "A", To: "B", Weight: 3},
		{From: "B", To: "C", Weight: core.MaxWeight + 1},
	}, true)
	assert.False(t, res.Success)
	assert.Equal(t, "Loaded 1 routes (0 already present, 1 invalid)", res.Message)
	assert.Equal(t, epoch+1, p.Graph().Epoch())
	assert.Equal(t, []string{"A", "B"}, p.Cities())
}

func TestPathFinder_JSONFields(t *testing.T) {
	p := xyz(t)

	raw, err := json.Marshal(p.FewestStops(context.Background(), "X", "Z"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":true,"path":["X","Z"],"stopCount":1,"message":"Path found with fewest stops."}`, string(raw))

	raw, err = json.Marshal(p.CheapestNetwork(context.Background()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":true,"edges":[["Y","Z",3],["X","Y",5]],"totalCost":8,"message":"Cheapest network found successfully.","components":1}`, string(raw))

	raw, err = json.Marshal(p.ShortestPath(context.Background(), "X", "Q"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false,"path":[],"totalWeight":0,"message":"One or both cities not found."}`, string(raw))

	var e pathfinder.NetworkEdge
	require.NoError(t, json.Unmarshal([]byte(`["A","B",4]`), &e))
	assert.Equal(t, pathfinder.NetworkEdge{From: "A", To: "B", Weight: 4}, e)
	assert.Error(t, json.Unmarshal([]byte(`["A","B"]`), &e))
}

// TestPathFinder_Concurrent runs readers against a writer; run with -race.
func TestPathFinder_Concurrent(t *testing.T) {
	ctx := context.Background()
	p := xyz(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sp := p.ShortestPath(ctx, "X", "Z")
				if assert.True(t, sp.Found) {
					assert.Equal(t, "X", sp.Path[0])
					assert.Equal(t, "Z", sp.Path[len(sp.Path)-1])
				}
				_ = p.LongestPath(ctx, "X", "Z")
				_ = p.PlanTour(ctx, []string{"X", "Y", "Z"})
				_ = p.CheapestNetwork(ctx)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			_ = p.UpdateRoute(ctx, "X", "Z", int64(j%12+1))
			_ = p.AddRoute(ctx, "Z", fmt.Sprint("W", j), 1)
		}
	}()
	wg.Wait()

	assert.Equal(t, 53, len(p.Cities()))
}
