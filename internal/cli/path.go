package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/pathfind"
	"github.com/matzehuels/wikigraph/pkg/render/pathviz"
)

// visitReportInterval is how many dequeued articles pass between spinner
// updates during a search.
const visitReportInterval = 1 << 14

// pathOpts holds the command-line flags for the path command.
type pathOpts struct {
	from     string // start title; config default when empty
	to       string // target title; config default when empty
	output   string // diagram file (.svg, .png, .pdf); none when empty
	detailed bool   // annotate diagram nodes with id, size and out-degree
}

// pathCommand creates the path command for shortest link path searches.
func (c *CLI) pathCommand() *cobra.Command {
	var opts pathOpts

	cmd := &cobra.Command{
		Use:   "path <graph-file>",
		Short: "Find the shortest link path between two articles",
		Long: `Find the shortest chain of links leading from one article to another.

Without --from and --to, the search runs between the configured default
articles. Titles are matched exactly; the first article with a title wins.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyPathDefaults(&opts, args[0])
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runPath(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start article title")
	cmd.Flags().StringVar(&opts.to, "to", "", "target article title")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write a diagram of the path (.svg, .png or .pdf)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show article details in the diagram")
	_ = cmd.RegisterFlagCompletionFunc("from", completeTitle)
	_ = cmd.RegisterFlagCompletionFunc("to", completeTitle)

	return cmd
}

// applyPathDefaults fills unset titles from the configuration.
func (c *CLI) applyPathDefaults(opts *pathOpts, graphFile string) {
	if opts.from == "" {
		opts.from = c.Config.Path.DefaultFrom
	}
	if opts.to == "" {
		opts.to = c.Config.Path.Target(graphFile)
	}
}

func (o pathOpts) validate() error {
	if err := apperrors.ValidateTitle(o.from); err != nil {
		return err
	}
	if err := apperrors.ValidateTitle(o.to); err != nil {
		return err
	}
	if o.output != "" {
		return apperrors.ValidateOutputPath(o.output, ".svg", ".png", ".pdf")
	}
	return nil
}

func (c *CLI) runPath(ctx context.Context, graphFile string, opts pathOpts) error {
	lg, err := loadGraph(ctx, graphFile)
	if err != nil {
		return err
	}
	printGraphInfo(lg.Graph)

	path, err := searchPath(ctx, lg, opts.from, opts.to)
	if err != nil {
		return err
	}
	if path == nil {
		return nil
	}
	printPath(lg.Graph, path)

	if opts.output != "" {
		dot := pathviz.ToDOT(lg.Graph, path, pathviz.Options{Detailed: opts.detailed})
		if err := pathviz.Write(ctx, opts.output, dot); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}
		printFile(opts.output)
	}
	return nil
}

// searchPath runs the search with a spinner showing the number of
// articles dequeued so far. A missing path is reported and yields a nil
// path with no error.
func searchPath(ctx context.Context, lg *loadedGraph, from, to string) ([]int, error) {
	logger := loggerFromContext(ctx)
	logger.Debug("searching", "from", from, "to", to)

	spin := newSpinner(ctx, "Searching")
	spin.Start()
	visited := 0
	prog := newProgress(logger)
	path, err := pathfind.Find(ctx, lg.Graph, from, to, pathfind.WithVisitor(func(int) {
		visited++
		if visited%visitReportInterval == 0 {
			spin.SetMessage(fmt.Sprintf("Searching: %d articles visited", visited))
		}
	}))
	spin.Stop()

	switch {
	case apperrors.Is(err, apperrors.ErrCodeNoPath):
		printWarning("No path from %q to %q", from, to)
		printDetail("%d articles visited", visited)
		return nil, nil
	case err != nil:
		return nil, err
	}
	prog.done(fmt.Sprintf("Search finished: %d articles visited", visited))
	return path, nil
}
