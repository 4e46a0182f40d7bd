// Package seed imports routes into a PathFinder at startup.
//
// A Source yields route records from somewhere (the embedded sample network,
// a YAML file, a MySQL table or a Neo4j graph). Sources are read-only: nothing
// is ever written back.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/pathfinder"
)

// ErrNoRoutes is returned by Apply when a source yields nothing.
var ErrNoRoutes = errors.New("seed: source has no routes")

// Record is one route as stored by a source. The distance bound matches
// core.MaxWeight.
type Record struct {
	From     string `yaml:"from" json:"from" validate:"required"`
	To       string `yaml:"to" json:"to" validate:"required,nefield=From"`
	Distance int64  `yaml:"distance" json:"distance" validate:"gt=0,lte=1099511627776"`
}

// Source yields route records.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	Load(ctx context.Context) ([]Record, error)
}

var validate = validator.New()

// Validate checks every record, reporting the first invalid one by index.
func Validate(records []Record) error {
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("seed: route %d (%s <-> %s): %w", i, r.From, r.To, err)
		}
	}
	return nil
}

// Routes converts records to core routes.
func Routes(records []Record) []core.Route {
	out := make([]core.Route, len(records))
	for i, r := range records {
		out[i] = core.Route{From: r.From, To: r.To, Weight: r.Distance}
	}
	return out
}

// Apply loads src into p. With replace set, the graph is cleared first.
func Apply(ctx context.Context, p *pathfinder.PathFinder, src Source, replace bool) (pathfinder.OperationResult, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return pathfinder.OperationResult{}, fmt.Errorf("seed: load %s: %w", src.Name(), err)
	}
	if len(records) == 0 {
		return pathfinder.OperationResult{}, fmt.Errorf("%w: %s", ErrNoRoutes, src.Name())
	}
	if err := Validate(records); err != nil {
		return pathfinder.OperationResult{}, err
	}

	return p.LoadRoutes(ctx, Routes(records), replace), nil
}
