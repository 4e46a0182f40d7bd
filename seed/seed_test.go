package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cityroutes/config"
	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/pathfinder"
)

func TestSample_Loads64Routes(t *testing.T) {
	records, err := Sample().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 64)
	assert.Equal(t, Record{From: "Boston", To: "New York", Distance: 215}, records[0])
	require.NoError(t, Validate(records))
}

func TestSample_IsConnected(t *testing.T) {
	p := pathfinder.New(pathfinder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	res, err := Apply(context.Background(), p, Sample(), true)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
	assert.Equal(t, 64, p.Graph().RouteCount())

	net := p.CheapestNetwork(context.Background())
	require.True(t, net.Found)
	assert.Equal(t, 1, net.Components)
	assert.Len(t, net.Edges, p.Graph().CityCount()-1)
}

func TestParseYAML(t *testing.T) {
	f, err := ParseYAML(strings.NewReader(`
name: tiny
routes:
  - {from: A, to: B, distance: 3}
  - {from: B, to: C, distance: 4}
`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", f.Name)
	assert.Equal(t, []Record{{"A", "B", 3}, {"B", "C", 4}}, f.Routes)

	_, err = ParseYAML(strings.NewReader("routes:\n  - {from: A, to: B, km: 3}\n"))
	assert.Error(t, err, "unknown fields are rejected")

	f, err = ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Routes)
}

func TestValidate(t *testing.T) {
	cases := map[string]Record{
		"missing from": {To: "B", Distance: 1},
		"missing to":   {From: "A", Distance: 1},
		"self loop":    {From: "A", To: "A", Distance: 1},
		"zero":         {From: "A", To: "B"},
		"negative":     {From: "A", To: "B", Distance: -1},
		"too far":      {From: "A", To: "B", Distance: core.MaxWeight + 1},
	}
	for name, r := range cases {
		err := Validate([]Record{{From: "X", To: "Y", Distance: 1}, r})
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "route 1", name)
	}
}

func TestYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes:\n  - {from: A, to: B, distance: 2}\n"), 0o644))

	src := YAMLFile{Path: path}
	assert.Equal(t, "yaml:"+path, src.Name())
	records, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Record{{"A", "B", 2}}, records)

	_, err = YAMLFile{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type staticSource []Record

func (s staticSource) Name() string { return "static" }
func (s staticSource) Load(context.Context) ([]Record, error) { return s, nil }

type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Load(context.Context) ([]Record, error) { return nil, errors.New("boom") }

func TestApply(t *testing.T) {
	ctx := context.Background()
	p := pathfinder.New(pathfinder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	_, err := Apply(ctx, p, staticSource{}, false)
	assert.ErrorIs(t, err, ErrNoRoutes)

	_, err = Apply(ctx, p, failingSource{}, false)
	assert.ErrorContains(t, err, "boom")

	_, err = Apply(ctx, p, staticSource{{From: "A", To: "A", Distance: 1}}, false)
	assert.Error(t, err)
	assert.Zero(t, p.Graph().RouteCount(), "invalid seeds change nothing")

	res, err := Apply(ctx, p, staticSource{{"A", "B", 1}, {"B", "C", 2}}, false)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"A", "B", "C"}, p.Cities())
}

type fakeRows struct {
	rows [][]any
	i    int
	err  error
}

func (f *fakeRows) Next() bool {
	f.i++
	return f.i <= len(f.rows)
}

func (f *fakeRows) Err() error { return f.err }
func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.i-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*string) = row[1].(string)
	*dest[2].(*int64) = row[2].(int64)
	return nil
}

func TestScanRecords(t *testing.T) {
	records, err := scanRecords(&fakeRows{rows: [][]any{
		{"Boston", "New York", int64(215)},
		{"Denver", "Salt Lake City", int64(525)},
	}})
	require.NoError(t, err)
	assert.Equal(t, []Record{{"Boston", "New York", 215}, {"Denver", "Salt Lake City", 525}}, records)

	_, err = scanRecords(&fakeRows{err: errors.New("conn reset")})
	assert.ErrorContains(t, err, "conn reset")
}

func TestOpenMySQL_BadDSN(t *testing.T) {
	_, err := OpenMySQL(context.Background(), "not a dsn", "")
	assert.ErrorContains(t, err, "parse mysql dsn")
}

func TestValidate_MaxDistanceAccepted(t *testing.T) {
	require.NoError(t, Validate([]Record{{From: "A", To: "B", Distance: core.MaxWeight}}))
}

func TestOpenNeo4j_MissingURI(t *testing.T) {
	_, err := OpenNeo4j(context.Background(), Neo4jOptions{})
	assert.ErrorIs(t, err, ErrMissingURI)
}

func TestRecordFrom(t *testing.T) {
	rec := &neo4j.Record{Keys: []string{"from", "to", "distance"}, Values: []any{"A", "B", int64(7)}}
	r, err := recordFrom(rec)
	require.NoError(t, err)
	assert.Equal(t, Record{"A", "B", 7}, r)

	rec.Values[2] = 8.0
	r, err = recordFrom(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(8), r.Distance)

	for _, bad := range []float64{7.9, math.NaN(), math.Inf(1), 1e19} {
		rec.Values[2] = bad
		_, err = recordFrom(rec)
		assert.ErrorIs(t, err, ErrFractionalDistance, "distance %v", bad)
	}

	rec.Values[2] = "far"
	_, err = recordFrom(rec)
	assert.Error(t, err)

	_, err = recordFrom(&neo4j.Record{Keys: []string{"from"}, Values: []any{"A"}})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	src, closeFn, err := Open(ctx, config.SeedConfig{Source: "none"})
	require.NoError(t, err)
	assert.Nil(t, src)
	closeFn()

	src, _, err = Open(ctx, config.SeedConfig{Source: "sample"})
	require.NoError(t, err)
	assert.Equal(t, "sample", src.Name())

	src, _, err = Open(ctx, config.SeedConfig{Source: "yaml", Path: "x.yaml"})
	require.NoError(t, err)
	assert.Equal(t, YAMLFile{Path: "x.yaml"}, src)

	_, _, err = Open(ctx, config.SeedConfig{Source: "csv"})
	assert.Error(t, err)
}
