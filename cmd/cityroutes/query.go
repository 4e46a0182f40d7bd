package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cityroutes/pathfinder"
	"github.com/katalvlaran/cityroutes/seed"
)

// errNotFound makes the process exit non-zero when a query finds nothing.
var errNotFound = errors.New("no result")

type queryFlags struct {
	seedPath string
	strict   bool
}

func newQueryCmd(a *app) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one query against a seeded graph and print the JSON result",
		Long: `Load a graph and run a single query against it.

The graph comes from --seed (a YAML route file) or, without it, from the
configured seed source.

Examples:
  cityroutes query shortest Boston Denver
  cityroutes query tour --seed routes.yaml Boston Chicago Denver
  cityroutes query network --strict`,
	}
	cmd.PersistentFlags().StringVar(&f.seedPath, "seed", "", "YAML route file to load instead of the configured source")

	run := func(fn func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			p, err := a.seededFinder(cmd.Context(), f.seedPath)
			if err != nil {
				return err
			}
			res, ok := fn(cmd.Context(), p, args)
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !ok {
				return errNotFound
			}
			return nil
		}
	}

	network := &cobra.Command{
		Use:   "network",
		Short: "Cheapest network connecting every city",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, _ []string) (any, bool) {
			res := p.CheapestNetwork(ctx)
			if f.strict && res.Components > 1 {
				res.Found = false
				res.Message = "Graph is not fully connected."
			}
			return res, res.Found
		}),
	}
	network.Flags().BoolVar(&f.strict, "strict", false, "fail when the graph is not connected")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "shortest FROM TO",
			Short: "Minimum-distance path",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool) {
				res := p.ShortestPath(ctx, args[0], args[1])
				return res, res.Found
			}),
		},
		&cobra.Command{
			Use:   "longest FROM TO",
			Short: "Maximum-distance simple path",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool) {
				res := p.LongestPath(ctx, args[0], args[1])
				return res, res.Found
			}),
		},
		&cobra.Command{
			Use:   "fewest FROM TO",
			Short: "Path with the fewest stops",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool) {
				res := p.FewestStops(ctx, args[0], args[1])
				return res, res.Found
			}),
		},
		&cobra.Command{
			Use:   "reachable FROM",
			Short: "Cities reachable from a city",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool) {
				res := p.ReachableCities(ctx, args[0])
				return res, p.Graph().HasCity(args[0])
			}),
		},
		&cobra.Command{
			Use:   "tour START CITY...",
			Short: "Short tour visiting every city, starting at the first",
			Args:  cobra.MinimumNArgs(2),
			RunE: run(func(ctx context.Context, p *pathfinder.PathFinder, args []string) (any, bool) {
				res := p.PlanTour(ctx, args)
				return res, res.Found
			}),
		},
		network,
		&cobra.Command{
			Use:   "graph",
			Short: "Every city and route",
			Args:  cobra.NoArgs,
			RunE: run(func(_ context.Context, p *pathfinder.PathFinder, _ []string) (any, bool) {
				return p.Snapshot(), true
			}),
		},
	)
	return cmd
}

func (a *app) seededFinder(ctx context.Context, path string) (*pathfinder.PathFinder, error) {
	p := a.newFinder()

	var src seed.Source
	if path != "" {
		src = seed.YAMLFile{Path: path}
	} else {
		s, closeSrc, err := seed.Open(ctx, a.cfg.Seed)
		if err != nil {
			return nil, err
		}
		defer closeSrc()
		src = s
	}
	if src == nil {
		return p, nil
	}
	if _, err := seed.Apply(ctx, p, src, true); err != nil {
		return nil, err
	}
	return p, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
