package seed

import (
	"context"
	"fmt"

	"github.com/katalvlaran/cityroutes/config"
)

// Open builds the Source named by cfg.Source. The returned close func
// releases any connection and is never nil. A "none" source returns nil.
func Open(ctx context.Context, cfg config.SeedConfig) (Source, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case "", "none":
		return nil, noop, nil
	case "sample":
		return Sample(), noop, nil
	case "yaml":
		return YAMLFile{Path: cfg.Path}, noop, nil
	case "mysql":
		src, err := OpenMySQL(ctx, cfg.MySQLDSN, cfg.MySQLQuery)
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close() }, nil
	case "neo4j":
		src, err := OpenNeo4j(ctx, Neo4jOptions{
			URI:      cfg.Neo4jURI,
			Database: cfg.Neo4jDatabase,
			Username: cfg.Neo4jUsername,
			Password: cfg.Neo4jPassword,
			Query:    cfg.Neo4jQuery,
		})
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	default:
		return nil, noop, fmt.Errorf("seed: unknown source %q", cfg.Source)
	}
}
