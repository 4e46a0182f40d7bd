package seed

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DefaultNeo4jQuery returns each ROUTE relationship once.
const DefaultNeo4jQuery = `MATCH (a:City)-[r:ROUTE]->(b:City) RETURN a.name AS from, b.name AS to, r.distance AS distance`

// ErrMissingURI is returned when no Bolt URI is configured.
var ErrMissingURI = errors.New("seed: neo4j uri is required")

// ErrFractionalDistance is returned for a float distance that is not a whole
// number within int64 range.
var ErrFractionalDistance = errors.New("seed: neo4j distance is not a whole number")

// Neo4jOptions configures a Neo4jSource.
type Neo4jOptions struct {
	URI      string
	Database string
	Username string
	Password string
	Query    string
}

// Neo4jSource reads routes from a Neo4j (or any Bolt-compatible) database.
type Neo4jSource struct {
	driver   neo4j.DriverWithContext
	database string
	query    string
}

// OpenNeo4j establishes a Bolt connection. The caller must Close the source.
func OpenNeo4j(ctx context.Context, opts Neo4jOptions) (*Neo4jSource, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(opts.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("seed: create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("seed: verify neo4j connectivity: %w", err)
	}

	q := opts.Query
	if q == "" {
		q = DefaultNeo4jQuery
	}
	return &Neo4jSource{driver: driver, database: opts.Database, query: q}, nil
}

// Name implements Source.
func (s *Neo4jSource) Name() string { return "neo4j" }

// Load implements Source.
func (s *Neo4jSource) Load(ctx context.Context) ([]Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, s.query, nil)
	if err != nil {
		return nil, err
	}

	var records []Record
	for res.Next(ctx) {
		r, err := recordFrom(res.Record())
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Close shuts the driver down.
func (s *Neo4jSource) Close(ctx context.Context) error { return s.driver.Close(ctx) }

func recordFrom(rec *neo4j.Record) (Record, error) {
	from, _, err := neo4j.GetRecordValue[string](rec, "from")
	if err != nil {
		return Record{}, fmt.Errorf("seed: neo4j column from: %w", err)
	}
	to, _, err := neo4j.GetRecordValue[string](rec, "to")
	if err != nil {
		return Record{}, fmt.Errorf("seed: neo4j column to: %w", err)
	}
	raw, ok := rec.Get("distance")
	if !ok {
		return Record{}, errors.New("seed: neo4j column distance missing")
	}

	r := Record{From: from, To: to}
	switch d := raw.(type) {
	case int64:
		r.Distance = d
	case float64:
		if d != math.Trunc(d) || d < math.MinInt64 || d >= math.MaxInt64 {
			return Record{}, fmt.Errorf("%w: %v", ErrFractionalDistance, d)
		}
		r.Distance = int64(d)
	default:
		return Record{}, fmt.Errorf("seed: neo4j distance has type %T", raw)
	}
	return r, nil
}
