package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cityroutes/config"
	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/logging"
	"github.com/katalvlaran/cityroutes/pathfinder"
)

// app is the state shared by all subcommands once the config is loaded.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cityroutes",
		Short: "Route queries over a network of cities",
		Long: `cityroutes keeps an in-memory network of cities joined by routes and
answers shortest, longest and fewest-stop paths, reachability, multi-city
tours and the cheapest connecting network.

Configuration is read from --config (YAML), then .env, then CITYROUTES_*
environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(a), newQueryCmd(a), newSeedCmd(a))
	return root
}

// newFinder builds a PathFinder from the engine section of the config.
func (a *app) newFinder() *pathfinder.PathFinder {
	e := a.cfg.Engine
	var graphOpts []core.GraphOption
	if e.PruneOrphans {
		graphOpts = append(graphOpts, core.WithPruneOrphans())
	}
	return pathfinder.New(
		pathfinder.WithLogger(a.logger),
		pathfinder.WithGraph(core.NewGraph(graphOpts...)),
		pathfinder.WithCacheSize(e.CacheSize),
		pathfinder.WithLimits(pathfinder.Limits{
			QueryTimeout:          e.QueryTimeout,
			LongestPathMaxCities:  e.LongestPathMaxCities,
			TourExactLimit:        e.TourExactLimit,
			MaxConcurrentSearches: e.MaxConcurrentSearches,
			NetworkMethod:         e.NetworkMethod,
		}),
	)
}
