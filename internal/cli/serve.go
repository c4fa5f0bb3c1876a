package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/internal/server"
)

// serveCommand creates the serve command, which loads a graph once and
// answers queries about it over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:               "serve <graph-file>",
		Short:             "Serve path and statistics queries over HTTP",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not use the report cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, graphFile, addr string, noCache bool) error {
	metrics := server.NewMetrics()
	metrics.Install()

	store, err := newCache(ctx, c.Config.Cache, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	lg, err := loadGraph(ctx, graphFile)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Graph:     lg.Graph,
		GraphHash: lg.hash,
		Cache:     store,
		CacheTTL:  c.Config.Cache.TTL.Duration,
		Logger:    c.Logger,
		Metrics:   metrics,
	})
	printSuccess("Serving %s on %s", lg.path, addr)
	printDetail("snapshot %s", srv.Snapshot())
	return srv.ListenAndServe(ctx, addr)
}
