package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Inspect seed files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Check a YAML route file without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fh.Close()

			f, err := seed.ParseYAML(fh)
			if err != nil {
				return err
			}
			if err := seed.Validate(f.Routes); err != nil {
				return err
			}

			g := core.NewGraph()
			var dup int
			for _, r := range seed.Routes(f.Routes) {
				if created, _ := g.AddRoute(r.From, r.To, r.Weight); !created {
					dup++
				}
			}
			a.logger.Debug("seed validated", "file", args[0], "routes", len(f.Routes))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d routes, %d cities, %d duplicate pairs\n",
				args[0], g.RouteCount(), g.CityCount(), dup)
			return nil
		},
	})
	return cmd
}
