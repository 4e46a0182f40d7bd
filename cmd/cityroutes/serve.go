package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cityroutes/seed"
	"github.com/katalvlaran/cityroutes/server"
	"github.com/katalvlaran/cityroutes/telemetry"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the HTTP API on the configured address.

The graph is seeded once at startup from the configured seed source
(sample, yaml, mysql, neo4j or none). Nothing is written back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	tel, err := telemetry.Init(ctx, a.cfg.Telemetry, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			a.logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	finder := a.newFinder()
	src, closeSrc, err := seed.Open(ctx, a.cfg.Seed)
	if err != nil {
		return err
	}
	defer closeSrc()
	if src != nil {
		res, err := seed.Apply(ctx, finder, src, true)
		if err != nil {
			return err
		}
		a.logger.Info("graph seeded", "source", src.Name(), "message", res.Message,
			"cities", finder.Graph().CityCount(), "routes", finder.Graph().RouteCount())
	}

	router := server.NewRouter(a.logger, server.RouterDependencies{
		Finder:         finder,
		Metrics:        tel.MetricsHandler(),
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
		RateLimit:      a.cfg.HTTP.RateLimit,
		RateBurst:      a.cfg.HTTP.RateBurst,
		ServiceName:    a.cfg.Telemetry.ServiceName,
	})
	return server.New(a.logger, a.cfg.HTTP, router).Run(ctx)
}
