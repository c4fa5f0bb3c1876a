package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/pathfind"
	"github.com/matzehuels/wikigraph/pkg/stats"
)

// reportCommand creates the report command, which loads the graph once and
// runs the path search and the statistics scan side by side.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		popts   pathOpts
		noCache bool
	)

	cmd := &cobra.Command{
		Use:               "report <graph-file>",
		Short:             "Run the default path search and the statistics in one pass",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPathDefaults(&popts, args[0])
			if err := popts.validate(); err != nil {
				return err
			}
			return c.runReport(cmd.Context(), args[0], popts, noCache)
		},
	}

	cmd.Flags().StringVar(&popts.from, "from", "", "start article title")
	cmd.Flags().StringVar(&popts.to, "to", "", "target article title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore and do not update the report cache")

	return cmd
}

// reportResult is what the concurrent half of runReport produces.
type reportResult struct {
	path    []int
	noPath  bool
	stats   *stats.Report
	cached  bool
	visited int
}

func (c *CLI) runReport(ctx context.Context, graphFile string, opts pathOpts, noCache bool) error {
	store, err := newCache(ctx, c.Config.Cache, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	lg, err := loadGraph(ctx, graphFile)
	if err != nil {
		return err
	}

	res, err := collectReport(ctx, lg, opts, func(ctx context.Context) (*stats.Report, bool, error) {
		return computeReport(ctx, lg, store, c.Config.Cache.TTL.Duration, false)
	})
	if err != nil {
		return err
	}

	printGraphInfo(lg.Graph)
	printInfo("Path from %q to %q", opts.from, opts.to)
	if res.noPath {
		printWarning("No path found")
		printDetail("%d articles visited", res.visited)
	} else {
		printPath(lg.Graph, res.path)
	}
	printReport(res.stats, res.cached)
	return nil
}

// collectReport runs the search and collect concurrently. Both only read
// the graph. The first failure cancels the other.
func collectReport(ctx context.Context, lg *loadedGraph, opts pathOpts,
	collect func(context.Context) (*stats.Report, bool, error)) (*reportResult, error) {
	var res reportResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		path, err := pathfind.Find(gctx, lg.Graph, opts.from, opts.to, pathfind.WithVisitor(func(int) {
			res.visited++
		}))
		if apperrors.Is(err, apperrors.ErrCodeNoPath) {
			res.noPath = true
			return nil
		}
		res.path = path
		return err
	})
	g.Go(func() error {
		r, cached, err := collect(gctx)
		res.stats, res.cached = r, cached
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}
