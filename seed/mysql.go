package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DefaultMySQLQuery reads the routes table created by the legacy web app.
const DefaultMySQLQuery = `SELECT city1, city2, distance FROM routes ORDER BY id`

// MySQLSource reads routes with a three-column query (from, to, distance).
type MySQLSource struct {
	DB    *sql.DB
	Query string
}

// OpenMySQL connects to dsn and checks the connection.
// The caller owns the returned source and must Close it.
func OpenMySQL(ctx context.Context, dsn, query string) (*MySQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("seed: parse mysql dsn: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("seed: mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(2)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed: ping mysql %s: %w", cfg.Addr, err)
	}

	return &MySQLSource{DB: db, Query: query}, nil
}

// Name implements Source.
func (s *MySQLSource) Name() string { return "mysql" }

// Load implements Source.
func (s *MySQLSource) Load(ctx context.Context) ([]Record, error) {
	q := s.Query
	if q == "" {
		q = DefaultMySQLQuery
	}
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Close releases the connection pool.
func (s *MySQLSource) Close() error { return s.DB.Close() }

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]Record, error) {
	records := make([]Record, 0, 64)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.From, &r.To, &r.Distance); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
